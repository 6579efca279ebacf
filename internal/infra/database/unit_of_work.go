package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
)

// DBTX is satisfied by both *sql.Conn and *sql.Tx, so repositories run the
// same statements inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type RepositoryProviderImpl struct {
	db DBTX
}

func (p *RepositoryProviderImpl) Customers() outbound.CustomerRepository {
	return &CustomerRepositoryImpl{db: p.db}
}

func (p *RepositoryProviderImpl) CustomerAuth() outbound.CustomerAuthRepository {
	return &CustomerAuthRepositoryImpl{db: p.db}
}

func (p *RepositoryProviderImpl) Accounts() outbound.AccountRepository {
	return &AccountRepositoryImpl{db: p.db}
}

func (p *RepositoryProviderImpl) Transactions() outbound.TransactionRepository {
	return &TransactionRepositoryImpl{db: p.db}
}

func (p *RepositoryProviderImpl) Cards() outbound.CardRepository {
	return &CardRepositoryImpl{db: p.db}
}

// UnitOfWorkImpl is created for a single operation and must not be shared.
type UnitOfWorkImpl struct {
	conn          *sql.Conn
	tx            *sql.Tx
	transactional bool
	provider      *RepositoryProviderImpl

	closeOnce sync.Once
	closeErr  error
}

func Begin(ctx context.Context, connections ConnectionProvider, transactional bool, isolation sql.IsolationLevel) (*UnitOfWorkImpl, error) {
	c, err := connections.GetConnection(ctx, transactional)
	if err != nil {
		return nil, err
	}

	u := &UnitOfWorkImpl{conn: c.Conn, transactional: c.Transactional}
	var q DBTX = c.Conn

	if c.Transactional {
		tx, err := c.Conn.BeginTx(ctx, &sql.TxOptions{Isolation: isolation})
		if err != nil {
			c.Conn.Close()
			return nil, fmt.Errorf("%w: begin transaction: %w", outbound.ErrConnection, err)
		}
		u.tx = tx
		q = tx
	}

	u.provider = &RepositoryProviderImpl{db: q}
	return u, nil
}

func (u *UnitOfWorkImpl) Repositories() outbound.RepositoryProvider {
	return u.provider
}

func (u *UnitOfWorkImpl) Transactional() bool {
	return u.transactional
}

func (u *UnitOfWorkImpl) Commit() error {
	if !u.transactional {
		return fmt.Errorf("%w: commit on a non-transactional unit", outbound.ErrInvalidState)
	}
	if u.tx == nil {
		return fmt.Errorf("%w: transaction already resolved", outbound.ErrInvalidState)
	}

	tx := u.tx
	u.tx = nil
	return tx.Commit()
}

// Rollback is a no-op once the transaction has been resolved, so cleanup
// paths may call it unconditionally.
func (u *UnitOfWorkImpl) Rollback() error {
	if !u.transactional {
		return fmt.Errorf("%w: rollback on a non-transactional unit", outbound.ErrInvalidState)
	}
	if u.tx == nil {
		return nil
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// Close releases the connection exactly once. A transaction still open at
// this point is rolled back, never committed.
func (u *UnitOfWorkImpl) Close() error {
	u.closeOnce.Do(func() {
		var rbErr error
		if u.tx != nil {
			rbErr = u.Rollback()
		}
		u.closeErr = errors.Join(rbErr, u.conn.Close())
	})
	return u.closeErr
}

type UnitOfWorkFactory struct {
	connections ConnectionProvider
	isolation   sql.IsolationLevel
}

func NewUnitOfWorkFactory(connections ConnectionProvider, isolation sql.IsolationLevel) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{connections: connections, isolation: isolation}
}

func (f *UnitOfWorkFactory) Begin(ctx context.Context, transactional bool) (outbound.UnitOfWork, error) {
	u, err := Begin(ctx, f.connections, transactional, f.isolation)
	if err != nil {
		return nil, err
	}
	return u, nil
}
