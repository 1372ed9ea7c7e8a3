// Package migrations embeds the SQLite schema files for session storage.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
