package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const customerAuthColumns = `customer_id, login_id, password_hash, two_factor_enabled,
	created_at, updated_at, deleted_at, is_deleted`

type CustomerAuthRepositoryImpl struct {
	db DBTX
}

func scanCustomerAuth(row rowScanner) (*entity.CustomerAuth, error) {
	var (
		a                               entity.CustomerAuth
		createdAt, updatedAt, deletedAt sql.NullTime
	)
	err := row.Scan(&a.CustomerID, &a.LoginID, &a.PasswordHash, &a.TwoFactorEnabled,
		&createdAt, &updatedAt, &deletedAt, &a.IsDeleted)
	if err != nil {
		return nil, translate(err)
	}
	a.CreatedAt = timePtr(createdAt)
	a.UpdatedAt = timePtr(updatedAt)
	a.DeletedAt = timePtr(deletedAt)
	return &a, nil
}

func (r *CustomerAuthRepositoryImpl) GetByCustomerID(ctx context.Context, customerID int64) (*entity.CustomerAuth, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerAuthColumns+` FROM customer_auth WHERE customer_id = $1 AND is_deleted = FALSE`, customerID)
	return scanCustomerAuth(row)
}

func (r *CustomerAuthRepositoryImpl) GetByLoginID(ctx context.Context, loginID string) (*entity.CustomerAuth, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerAuthColumns+` FROM customer_auth WHERE login_id = $1 AND is_deleted = FALSE`, loginID)
	return scanCustomerAuth(row)
}

func (r *CustomerAuthRepositoryImpl) Insert(ctx context.Context, a *entity.CustomerAuth) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customer_auth (customer_id, login_id, password_hash, two_factor_enabled,
			created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)`,
		a.CustomerID, a.LoginID, a.PasswordHash, a.TwoFactorEnabled,
		nullTime(a.CreatedAt), nullTime(a.UpdatedAt),
	)
	return translate(err)
}

func (r *CustomerAuthRepositoryImpl) Update(ctx context.Context, a *entity.CustomerAuth) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE customer_auth
		SET login_id = $1, password_hash = $2, two_factor_enabled = $3, updated_at = $4
		WHERE customer_id = $5 AND is_deleted = FALSE`,
		a.LoginID, a.PasswordHash, a.TwoFactorEnabled, nullTime(a.UpdatedAt), a.CustomerID,
	))
}

func (r *CustomerAuthRepositoryImpl) SoftDelete(ctx context.Context, customerID int64, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE customer_auth SET is_deleted = TRUE, deleted_at = $1, updated_at = $2
		WHERE customer_id = $3 AND is_deleted = FALSE`,
		at, at, customerID,
	))
}
