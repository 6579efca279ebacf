package outbound

import (
	"context"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// GetByEmailOrPhone tries the email first and falls back to the phone.
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Customer, error)
	Insert(ctx context.Context, c *entity.Customer) (int64, error)
	Update(ctx context.Context, c *entity.Customer) error
	SoftDelete(ctx context.Context, id int64, reason string, at time.Time) error
	UpdateKYCStatus(ctx context.Context, id int64, status entity.KYCStatus, at time.Time) error
	ListAll(ctx context.Context) ([]entity.Customer, error)
}

type CustomerAuthRepository interface {
	GetByCustomerID(ctx context.Context, customerID int64) (*entity.CustomerAuth, error)
	GetByLoginID(ctx context.Context, loginID string) (*entity.CustomerAuth, error)
	Insert(ctx context.Context, a *entity.CustomerAuth) error
	Update(ctx context.Context, a *entity.CustomerAuth) error
	SoftDelete(ctx context.Context, customerID int64, at time.Time) error
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]entity.Account, error)
	Insert(ctx context.Context, a *entity.Account) (int64, error)
	GetBalance(ctx context.Context, id int64) (int64, error)
	// LockBalance write-locks the account row for the rest of the unit of
	// work and returns its balance.
	LockBalance(ctx context.Context, id int64, at time.Time) (int64, error)
	// AdjustBalance adds delta to the balance. It fails with
	// entity.ErrInsufficientFunds when the result would be negative and with
	// entity.ErrAccountNotActive when the account is closed.
	AdjustBalance(ctx context.Context, id int64, delta int64, at time.Time) error
	Close(ctx context.Context, id int64, at time.Time) error
	UpdateStatus(ctx context.Context, id int64, status entity.AccountStatus, at time.Time) error
	UpdateType(ctx context.Context, id int64, accountType entity.AccountType, at time.Time) error
	// UpdateCurrency only applies to active accounts with a zero balance and
	// reports whether the row was changed.
	UpdateCurrency(ctx context.Context, id int64, currency entity.Currency, at time.Time) (bool, error)
}

type TransactionRepository interface {
	Insert(ctx context.Context, t *entity.Transaction) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]entity.Transaction, error)
	GetAmountDelta(ctx context.Context, id int64) (int64, error)
}

type CardRepository interface {
	Insert(ctx context.Context, c *entity.Card) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Card, error)
	ListByAccount(ctx context.Context, accountID int64) ([]entity.Card, error)
	// UpdatePIN stores a new hash and clears the failure counter and lock.
	UpdatePIN(ctx context.Context, id int64, pinHash string) error
	UpdatePINFailCount(ctx context.Context, id int64, count int, lockedUntil *time.Time) error
	UpdateStatus(ctx context.Context, id int64, status entity.CardStatus) error
	DeactivateAll(ctx context.Context, accountID int64, at time.Time) (int64, error)
	HasActive(ctx context.Context, accountID int64) (bool, error)
}
