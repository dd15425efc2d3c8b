// assets/embed.go
//
// Static tables bundled into the binary:
//   - vocabulary.json: the default vocabulary catalog.
//   - families.yaml:   word -> family root table.
//   - migrations/*.sql: leaderboard schema, applied in lexical order.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed vocabulary.json families.yaml migrations/*.sql
var FS embed.FS

// Vocabulary returns the raw default catalog (JSON array of entries).
func Vocabulary() ([]byte, error) {
	return FS.ReadFile("vocabulary.json")
}

// Families returns the raw default word-family table (YAML mapping).
func Families() ([]byte, error) {
	return FS.ReadFile("families.yaml")
}

// Migrations exposes the embedded migrations directory rooted at "migrations".
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
