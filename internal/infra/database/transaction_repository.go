package database

import (
	"context"
	"database/sql"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const transactionColumns = `id, account_id, transaction_type, amount_delta, related_account_id,
	created_at, status, group_id, note`

type TransactionRepositoryImpl struct {
	db DBTX
}

func scanTransaction(row rowScanner) (*entity.Transaction, error) {
	var (
		t              entity.Transaction
		txType, status int64
		related, group sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.AccountID, &txType, &t.AmountDelta, &related, &t.CreatedAt, &status, &group, &t.Note)
	if err != nil {
		return nil, translate(err)
	}
	t.Type = entity.TransactionType(txType)
	t.Status = entity.TransactionStatus(status)
	t.RelatedAccount = int64Ptr(related)
	t.GroupID = int64Ptr(group)
	return &t, nil
}

func (r *TransactionRepositoryImpl) Insert(ctx context.Context, t *entity.Transaction) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transactions (account_id, transaction_type, amount_delta, related_account_id,
			created_at, status, group_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		t.AccountID, int64(t.Type), t.AmountDelta, nullInt64(t.RelatedAccount),
		t.CreatedAt, int64(t.Status), nullInt64(t.GroupID), t.Note,
	).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

func (r *TransactionRepositoryImpl) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *TransactionRepositoryImpl) ListByAccount(ctx context.Context, accountID int64) ([]entity.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE account_id = $1 ORDER BY created_at DESC, id DESC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TransactionRepositoryImpl) GetAmountDelta(ctx context.Context, id int64) (int64, error) {
	var delta int64
	err := r.db.QueryRowContext(ctx, `SELECT amount_delta FROM transactions WHERE id = $1`, id).Scan(&delta)
	if err != nil {
		return 0, translate(err)
	}
	return delta, nil
}
