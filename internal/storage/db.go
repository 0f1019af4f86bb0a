package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the connection (pgx stdlib driver) and verifies health.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Migrate applies all embedded migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

// Store bundles the per-entity repositories handed to bot modules.
type Store struct {
	DB          *sql.DB
	Settings    *SettingsRepo
	Levels      *LevelsRepo
	Infractions *InfractionsRepo
	Tickets     *TicketsRepo
}

// New creates a Store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{
		DB:          db,
		Settings:    NewSettingsRepo(db),
		Levels:      NewLevelsRepo(db),
		Infractions: NewInfractionsRepo(db),
		Tickets:     NewTicketsRepo(db),
	}
}
