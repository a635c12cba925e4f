// Package migrations embeds the SQL schema migrations for the local
// photo database. Applied with goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
