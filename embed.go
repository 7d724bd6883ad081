// Package stamps is the module root. It embeds the SQL migrations so the
// migrate command and tests can apply them without a checkout of the repo.
package stamps

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
