package migrate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const postgresDriver = "postgres"

// OpenPostgres opens a lib/pq connection for goose, separate from the gorm pool
// the api serves from.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	conn, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres for migrations: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging postgres for migrations: %w", err)
	}
	return conn, nil
}
