package persistence

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-go sqlite driver
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// OpenSQLite открывает локальный файл с той же таблицей listings, что и в Postgres.
// Используется CLI, чтобы сохранять пакетные прогоны без сервера.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Connect: %w", err)
	}

	// Одна запись за раз: sqlite не любит параллельных писателей.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
