// Package migrations embeds the goose migrations for every SQL storage driver.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the migrations for the postgres storage driver.
func Postgres() fs.FS {
	return sub("postgres")
}

// SQLite returns the migrations for the sqlite storage driver.
func SQLite() fs.FS {
	return sub("sqlite")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
