package appfs

import "embed"

// FS holds the SQL migrations, applied with goose from the "migrations" directory.
//go:embed migrations/*.sql
var FS embed.FS
