package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolConfig holds the database/sql pool limits.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

// OpenPostgres opens and pings a pgx-backed *sql.DB.
func OpenPostgres(ctx context.Context, dsn string, development bool, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", prepareDSN(dsn, development))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	return db, nil
}

// prepareDSN disables SSL for local development. Other environments sit
// behind a transaction pooler and must use the simple query protocol.
func prepareDSN(dsn string, development bool) string {
	isURL := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	param := "default_query_exec_mode=simple_protocol"
	if development {
		if strings.Contains(dsn, "sslmode") {
			return dsn
		}
		param = "sslmode=disable"
	} else if strings.Contains(dsn, "default_query_exec_mode") {
		return dsn
	}

	if !isURL {
		return dsn + " " + param
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
