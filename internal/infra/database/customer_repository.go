package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const customerColumns = `id, name, gender, birth_date, id_type, id_number, address, phone, email,
	kyc_status, created_at, updated_at, deleted_at, is_deleted, deleted_reason`

type rowScanner interface {
	Scan(dest ...any) error
}

type CustomerRepositoryImpl struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepositoryImpl {
	return &CustomerRepositoryImpl{db: db}
}

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var (
		c         entity.Customer
		gender    sql.NullInt64
		idType    sql.NullInt64
		birthDate sql.NullTime
		createdAt sql.NullTime
		updatedAt sql.NullTime
		deletedAt sql.NullTime
		kyc       int64
	)
	err := row.Scan(&c.ID, &c.Name, &gender, &birthDate, &idType, &c.IDNumber, &c.Address, &c.Phone, &c.Email,
		&kyc, &createdAt, &updatedAt, &deletedAt, &c.IsDeleted, &c.DeletedReason)
	if err != nil {
		return nil, translate(err)
	}
	if gender.Valid {
		g := entity.Gender(gender.Int64)
		c.Gender = &g
	}
	if idType.Valid {
		t := entity.IDType(idType.Int64)
		c.IDType = &t
	}
	if birthDate.Valid {
		c.BirthDate = birthDate.Time
	}
	c.KYCStatus = entity.KYCStatus(kyc)
	c.CreatedAt = timePtr(createdAt)
	c.UpdatedAt = timePtr(updatedAt)
	c.DeletedAt = timePtr(deletedAt)
	return &c, nil
}

func (r *CustomerRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND is_deleted = FALSE`, id)
	return scanCustomer(row)
}

func (r *CustomerRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	if email == "" {
		return nil, outbound.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1 AND is_deleted = FALSE ORDER BY id LIMIT 1`, email)
	return scanCustomer(row)
}

func (r *CustomerRepositoryImpl) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	if phone == "" {
		return nil, outbound.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE phone = $1 AND is_deleted = FALSE ORDER BY id LIMIT 1`, phone)
	return scanCustomer(row)
}

func (r *CustomerRepositoryImpl) GetByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Customer, error) {
	c, err := r.GetByEmail(ctx, email)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, outbound.ErrNotFound) {
		return nil, err
	}
	return r.GetByPhone(ctx, phone)
}

func (r *CustomerRepositoryImpl) Insert(ctx context.Context, c *entity.Customer) (int64, error) {
	var birthDate sql.NullTime
	if !c.BirthDate.IsZero() {
		birthDate = sql.NullTime{Time: c.BirthDate, Valid: true}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, gender, birth_date, id_type, id_number, address, phone, email,
			kyc_status, created_at, updated_at, is_deleted, deleted_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, '')
		RETURNING id`,
		c.Name, nullEnum(c.Gender), birthDate, nullEnum(c.IDType), c.IDNumber, c.Address, c.Phone, c.Email,
		int64(c.KYCStatus), nullTime(c.CreatedAt), nullTime(c.UpdatedAt),
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, c *entity.Customer) error {
	var birthDate sql.NullTime
	if !c.BirthDate.IsZero() {
		birthDate = sql.NullTime{Time: c.BirthDate, Valid: true}
	}

	return expectOne(r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $1, gender = $2, birth_date = $3, id_type = $4, id_number = $5, address = $6,
			phone = $7, email = $8, updated_at = $9
		WHERE id = $10 AND is_deleted = FALSE`,
		c.Name, nullEnum(c.Gender), birthDate, nullEnum(c.IDType), c.IDNumber, c.Address,
		c.Phone, c.Email, nullTime(c.UpdatedAt), c.ID,
	))
}

func (r *CustomerRepositoryImpl) SoftDelete(ctx context.Context, id int64, reason string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE customers SET is_deleted = TRUE, deleted_reason = $1, deleted_at = $2, updated_at = $3
		WHERE id = $4 AND is_deleted = FALSE`,
		reason, at, at, id,
	))
}

func (r *CustomerRepositoryImpl) UpdateKYCStatus(ctx context.Context, id int64, status entity.KYCStatus, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE customers SET kyc_status = $1, updated_at = $2 WHERE id = $3 AND is_deleted = FALSE`,
		int64(status), at, id,
	))
}

func (r *CustomerRepositoryImpl) ListAll(ctx context.Context) ([]entity.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE is_deleted = FALSE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func nullEnum[T ~int](p *T) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
