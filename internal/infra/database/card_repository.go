package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const cardColumns = `id, account_id, card_number, expiry_year, expiry_month, pin_hash, pin_fail_count,
	pin_locked_until, card_type, status, deactivated_at, replaced_by, created_at`

type CardRepositoryImpl struct {
	db DBTX
}

func scanCard(row rowScanner) (*entity.Card, error) {
	var (
		c                        entity.Card
		cardType, status         int64
		lockedUntil, deactivated sql.NullTime
		replacedBy               sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.AccountID, &c.Number, &c.ExpiryYear, &c.ExpiryMonth, &c.PINHash, &c.PINFailCount,
		&lockedUntil, &cardType, &status, &deactivated, &replacedBy, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	c.Type = entity.CardType(cardType)
	c.Status = entity.CardStatus(status)
	c.PINLockedUntil = timePtr(lockedUntil)
	c.DeactivatedAt = timePtr(deactivated)
	c.ReplacedBy = int64Ptr(replacedBy)
	return &c, nil
}

func (r *CardRepositoryImpl) Insert(ctx context.Context, c *entity.Card) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cards (account_id, card_number, expiry_year, expiry_month, pin_hash, pin_fail_count,
			card_type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8)
		RETURNING id`,
		c.AccountID, c.Number, c.ExpiryYear, c.ExpiryMonth, c.PINHash,
		int64(c.Type), int64(c.Status), c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (r *CardRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	return scanCard(row)
}

func (r *CardRepositoryImpl) ListByAccount(ctx context.Context, accountID int64) ([]entity.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE account_id = $1 ORDER BY id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CardRepositoryImpl) UpdatePIN(ctx context.Context, id int64, pinHash string) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE cards SET pin_hash = $1, pin_fail_count = 0, pin_locked_until = NULL WHERE id = $2`,
		pinHash, id,
	))
}

func (r *CardRepositoryImpl) UpdatePINFailCount(ctx context.Context, id int64, count int, lockedUntil *time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE cards SET pin_fail_count = $1, pin_locked_until = $2 WHERE id = $3`,
		count, nullTime(lockedUntil), id,
	))
}

func (r *CardRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status entity.CardStatus) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE cards SET status = $1 WHERE id = $2`,
		int64(status), id,
	))
}

func (r *CardRepositoryImpl) DeactivateAll(ctx context.Context, accountID int64, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET status = $1, deactivated_at = $2
		WHERE account_id = $3 AND status = $4`,
		int64(entity.CardInactive), at, accountID, int64(entity.CardActive),
	)
	if err != nil {
		return 0, translate(err)
	}
	return res.RowsAffected()
}

func (r *CardRepositoryImpl) HasActive(ctx context.Context, accountID int64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE account_id = $1 AND status = $2`,
		accountID, int64(entity.CardActive),
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
