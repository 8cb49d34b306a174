// Package assets embeds the files shipped with the binaries:
// SQL migrations, email templates, the sūtra content pack & the common passwords list.
package assets

import "embed"

//go:embed migrations/*.sql templates/email/* content/*.yaml common-passwords.txt.gz
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	ContentPack       = "content/sutras.yaml"
	CommonPasswordsGz = "common-passwords.txt.gz"
)
