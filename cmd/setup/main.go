// Command setup applies the SQL schema in migrations/ to the remote
// store's Postgres database. It is run once against a fresh project
// (or again after pulling new migrations); the application itself never
// touches the database directly.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var (
		dsn  = flag.String("dsn", os.Getenv("SUPABASE_DB_URL"), "Postgres connection string of the remote store")
		path = flag.String("migrations", "file://migrations", "migrations source URL")
		down = flag.Bool("down", false, "roll back all migrations instead of applying them")
	)
	flag.Parse()

	if *dsn == "" {
		logger.Error("no connection string: pass -dsn or set SUPABASE_DB_URL")
		os.Exit(1)
	}

	if err := ping(*dsn); err != nil {
		logger.Error("could not reach the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.New(*path, *dsn)
	if err != nil {
		logger.Error("could not load migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	version, dirty, _ := m.Version()
	logger.Info("schema up to date", slog.Int("version", int(version)), slog.Bool("dirty", dirty))
}

func ping(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
