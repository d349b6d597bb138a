// Package static embeds the stylesheet and script of the comprobantes page.
package static

import "embed"

//go:embed css js
var FS embed.FS
