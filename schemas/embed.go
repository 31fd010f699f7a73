// Package schemas embeds the SQL migrations applied by database.Migrate.
package schemas

import "embed"

// Migrations holds the goose migration files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
