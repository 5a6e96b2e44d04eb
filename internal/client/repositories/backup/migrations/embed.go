// Package migrations embeds the goose migrations for the local backup store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
