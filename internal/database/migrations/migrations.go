// Package migrations embeds the SQL schema of the comprobantes table.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
