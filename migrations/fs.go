// Package migrations embeds the versioned schema migrations for both
// storage backends.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
