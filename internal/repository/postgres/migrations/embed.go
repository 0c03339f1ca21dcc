// Package migrations holds the Postgres schema as embedded .sql files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
