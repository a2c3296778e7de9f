// Package migrations embeds the goose schema migrations for sqlstore.
package migrations

import "embed"

// Migrations holds the SQL migration files applied by sqlstore.RunMigrations.
//
//go:embed *.sql
var Migrations embed.FS
