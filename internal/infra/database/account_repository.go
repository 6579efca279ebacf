package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const accountColumns = `id, customer_id, account_type, balance, currency, status,
	open_date, close_date, is_closed, updated_at`

type AccountRepositoryImpl struct {
	db DBTX
}

func scanAccount(row rowScanner) (*entity.Account, error) {
	var (
		a                              entity.Account
		accountType, status            int64
		currency                       string
		openDate, closeDate, updatedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.CustomerID, &accountType, &a.Balance, &currency, &status,
		&openDate, &closeDate, &a.IsClosed, &updatedAt)
	if err != nil {
		return nil, translate(err)
	}
	a.Type = entity.AccountType(accountType)
	a.Status = entity.AccountStatus(status)
	a.Currency = entity.ParseCurrency(currency)
	a.OpenDate = timePtr(openDate)
	a.CloseDate = timePtr(closeDate)
	a.UpdatedAt = timePtr(updatedAt)
	return &a, nil
}

func (r *AccountRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]entity.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE customer_id = $1 ORDER BY id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AccountRepositoryImpl) Insert(ctx context.Context, a *entity.Account) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (customer_id, account_type, balance, currency, status, open_date, is_closed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING id`,
		a.CustomerID, int64(a.Type), a.Balance, string(a.Currency), int64(a.Status),
		nullTime(a.OpenDate), nullTime(a.UpdatedAt),
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (r *AccountRepositoryImpl) GetBalance(ctx context.Context, id int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = $1`, id).Scan(&balance)
	if err != nil {
		return 0, translate(err)
	}
	return balance, nil
}

// LockBalance touches the row so it stays write-locked until the unit of
// work ends, and returns the balance as of that lock.
func (r *AccountRepositoryImpl) LockBalance(ctx context.Context, id int64, at time.Time) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE accounts SET updated_at = $1
		WHERE id = $2
		RETURNING balance`,
		at, id,
	).Scan(&balance)
	if err != nil {
		return 0, translate(err)
	}
	return balance, nil
}

func (r *AccountRepositoryImpl) AdjustBalance(ctx context.Context, id int64, delta int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET balance = balance + $1, updated_at = $2
		WHERE id = $3 AND is_closed = FALSE AND balance + $1 >= 0`,
		delta, at, id,
	)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// nothing matched: the account is missing, closed, or would go negative
	var closed bool
	err = r.db.QueryRowContext(ctx, `SELECT is_closed FROM accounts WHERE id = $1`, id).Scan(&closed)
	if err != nil {
		return translate(err)
	}
	if closed {
		return entity.ErrAccountNotActive
	}
	return entity.ErrInsufficientFunds
}

func (r *AccountRepositoryImpl) Close(ctx context.Context, id int64, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE accounts SET is_closed = TRUE, status = $1, close_date = $2, updated_at = $3
		WHERE id = $4 AND is_closed = FALSE`,
		int64(entity.AccountClosed), at, at, id,
	))
}

func (r *AccountRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status entity.AccountStatus, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE accounts SET status = $1, updated_at = $2 WHERE id = $3`,
		int64(status), at, id,
	))
}

func (r *AccountRepositoryImpl) UpdateType(ctx context.Context, id int64, accountType entity.AccountType, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE accounts SET account_type = $1, updated_at = $2 WHERE id = $3`,
		int64(accountType), at, id,
	))
}

func (r *AccountRepositoryImpl) UpdateCurrency(ctx context.Context, id int64, currency entity.Currency, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET currency = $1, updated_at = $2
		WHERE id = $3 AND balance = 0 AND status = $4 AND is_closed = FALSE`,
		string(currency), at, id, int64(entity.AccountActive),
	)
	if err != nil {
		return false, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
