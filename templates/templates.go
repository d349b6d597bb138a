// Package templates embeds the HTML templates served by the viewer.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
