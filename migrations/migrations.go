// Package migrations embeds the schema migrations applied by golang-migrate.
package migrations

import "embed"

// Postgres holds the migrations for the PostgreSQL adapter under "postgres".
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the migrations for the SQLite adapter under "sqlite".
//
//go:embed sqlite/*.sql
var SQLite embed.FS
