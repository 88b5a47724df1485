package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded SQL migrations.
func Migrate(ctx context.Context, databaseURL string) error {
	db, err := openMigrationDB(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// RunMigrationCommand runs a goose command ("up", "down", "status",
// "version", "redo", "reset") against the embedded migrations.
func RunMigrationCommand(databaseURL, command string, args ...string) error {
	db, err := openMigrationDB(databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

const migrationsDir = "migrations"

func openMigrationDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening migration connection: %w", err)
	}

	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	return db, nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Info().Str("component", "migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatal().Str("component", "migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
