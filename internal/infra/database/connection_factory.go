package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
)

const DefaultDataSource = "bankingdb"

// Connection is a physical connection taken from the pool, tagged with the
// mode the caller asked for.
type Connection struct {
	Conn          *sql.Conn
	Transactional bool
	Source        string
}

type ConnectionProvider interface {
	GetConnection(ctx context.Context, transactional bool) (Connection, error)
}

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open creates the pool for a data source and verifies it answers.
func Open(ctx context.Context, driver, dsn string, pool PoolOptions) (*sql.DB, error) {
	if driver == "" || dsn == "" {
		return nil, fmt.Errorf("%w: driver and dsn are required", outbound.ErrConfiguration)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", outbound.ErrConfiguration, err)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", outbound.ErrConnection, err)
	}
	return db, nil
}

type ConnectionFactory struct {
	source string
	db     *sql.DB
}

func NewConnectionFactory(source string, db *sql.DB) *ConnectionFactory {
	if source == "" {
		source = DefaultDataSource
	}
	return &ConnectionFactory{source: source, db: db}
}

func (f *ConnectionFactory) GetConnection(ctx context.Context, transactional bool) (Connection, error) {
	if f.db == nil {
		return Connection{}, fmt.Errorf("%w: no pool for data source %q", outbound.ErrConfiguration, f.source)
	}

	conn, err := f.db.Conn(ctx)
	if err != nil {
		return Connection{}, fmt.Errorf("%w: %s: %w", outbound.ErrConnection, f.source, err)
	}
	return Connection{Conn: conn, Transactional: transactional, Source: f.source}, nil
}

func (f *ConnectionFactory) Source() string { return f.source }

func (f *ConnectionFactory) DB() *sql.DB { return f.db }
