package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const LatestVersion = "latest"

func withMigrationDB(connectionURL string, op func(db *sql.DB) error) (err error) {
	db, err := goose.OpenDBWithDriver("pgx", connectionURL)
	if err != nil {
		return fmt.Errorf("failed to connect with database: %w", err)
	}
	defer func() {
		dbErr := db.Close()
		if dbErr == nil {
			return
		}
		if err == nil {
			err = fmt.Errorf("failed to close database connection: %w", dbErr)
		} else {
			err = fmt.Errorf("multiple errors occurred: %w, %s", err, dbErr)
		}
	}()

	goose.SetBaseFS(Migrations)
	err = goose.SetDialect("postgres")
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return op(db)
}

// MigrateTo applies the embedded migrations up to version, which is either a
// migration number or LatestVersion.
func MigrateTo(ctx context.Context, connectionURL string, version string) error {
	var target int64
	if version != LatestVersion {
		var err error
		target, err = strconv.ParseInt(version, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}
	}
	return withMigrationDB(connectionURL, func(db *sql.DB) error {
		if version == LatestVersion {
			return goose.UpContext(ctx, db, "migrations")
		}
		return goose.UpToContext(ctx, db, "migrations", target)
	})
}

// PrintStatus logs the applied/pending state of every embedded migration.
func PrintStatus(connectionURL string) error {
	return withMigrationDB(connectionURL, func(db *sql.DB) error {
		return goose.Status(db, "migrations")
	})
}
