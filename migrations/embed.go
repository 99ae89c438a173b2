// Package migrations embeds the numbered schema files applied by
// db.OpenDatabase. Files are forward-only and run once each, in numeric order.
package migrations

import "embed"

//go:embed *.sql
var Schema embed.FS
