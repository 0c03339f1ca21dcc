// Package migrations holds the SQLite schema as embedded .sql files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
