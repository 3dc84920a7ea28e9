// Package assets embeds the static files the server ships with:
// SQL migrations for the sqlite game store and the OpenAPI document.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed sql/*.sql openapi.json
var FS embed.FS

// Migrations returns the sql/ directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is embedded at build time; Sub only fails on a bad path.
		panic(err)
	}
	return sub
}

// OpenAPI returns the raw OpenAPI document.
func OpenAPI() ([]byte, error) {
	return FS.ReadFile("openapi.json")
}
