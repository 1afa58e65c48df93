package repo

import (
	"database/sql"
	"embed"

	"github.com/ansel1/merry"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the Postgres schema up to date.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return merry.Prepend(err, "set goose dialect")
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return merry.Prepend(err, "run migrations")
	}
	return nil
}
