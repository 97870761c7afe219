// Package migrations holds the SQL schema of the campaigns store.
package migrations

import (
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var FS embed.FS

// Version is the schema version this build runs against. It must match the
// newest file in FS.
const Version uint = 1

// Latest returns the highest version present in FS.
func Latest() (uint, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return 0, err
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, err
		}
		v = next
	}
}
