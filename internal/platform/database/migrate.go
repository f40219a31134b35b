package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// EmbedMigrations contains the embedded SQL migration files.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS

const migrationsDir = "migrations"

// MigrationCommands lists the goose commands exposed by Migrate.
var MigrationCommands = []string{"up", "down", "status", "version", "reset"}

// RunMigrations executes all pending goose migrations.
func RunMigrations(db *sql.DB) error {
	return Migrate(context.Background(), db, "up")
}

// Migrate runs one goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string) error {
	if !knownCommand(command) {
		return fmt.Errorf("unknown migration command %q", command)
	}
	goose.SetBaseFS(EmbedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	return nil
}

func knownCommand(command string) bool {
	for _, c := range MigrationCommands {
		if c == command {
			return true
		}
	}
	return false
}
