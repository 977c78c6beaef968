// Package migrations embeds the goose SQL migrations, one directory per dialect.
package migrations

import "embed"

// Dialect directories inside FS
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
