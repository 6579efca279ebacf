package outbound

import "context"

// RepositoryProvider hands out repositories bound to one unit of work.
// A provider never outlives the unit that created it.
type RepositoryProvider interface {
	Customers() CustomerRepository
	CustomerAuth() CustomerAuthRepository
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Cards() CardRepository
}

// UnitOfWork owns one connection and at most one transaction.
type UnitOfWork interface {
	Repositories() RepositoryProvider
	Transactional() bool
	Commit() error
	Rollback() error
	Close() error
}

type UnitOfWorkFactory interface {
	Begin(ctx context.Context, transactional bool) (UnitOfWork, error)
}
