package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
)

// PostgresRepository stores the trail in the append-only audit_records
// table. Ids come from the table's sequence.
type PostgresRepository struct {
	db     *sql.DB
	clock  clock.Clock
	signer outbound.Signer
	log    logger.Logger
}

func NewPostgresRepository(db *sql.DB, clk clock.Clock, signer outbound.Signer, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, clock: clk, signer: signer, log: log}
}

func (r *PostgresRepository) Write(ctx context.Context, entry entity.AuditEntry) bool {
	if _, err := r.Record(ctx, entry); err != nil {
		r.log.Error(ctx, "audit insert failed",
			logger.String("action", entry.Action),
			logger.WithError(err),
		)
		return false
	}
	return true
}

func (r *PostgresRepository) Record(ctx context.Context, entry entity.AuditEntry) (entity.AuditRecord, error) {
	entry = entry.Normalize(r.clock.UtcNow())
	entry.OccurredAt = entry.OccurredAt.Truncate(time.Microsecond)

	before, err := snapshot(entry.BeforeSnapshot)
	if err != nil {
		return entity.AuditRecord{}, err
	}
	after, err := snapshot(entry.AfterSnapshot)
	if err != nil {
		return entity.AuditRecord{}, err
	}

	rec := entity.AuditRecord{
		UserID:    entry.UserID(),
		Action:    entry.Action,
		Timestamp: entry.OccurredAt,
		Details:   entry.Details(),
	}

	// anonymous actors are stored as NULL so an actor filter never matches them
	var userID, targetID sql.NullInt64
	if entry.ActorUserID != nil {
		userID = sql.NullInt64{Int64: *entry.ActorUserID, Valid: true}
	}
	if entry.TargetID != nil {
		targetID = sql.NullInt64{Int64: *entry.TargetID, Valid: true}
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO audit_records (user_id, actor_role, action, target_type, target_id, correlation_id,
			client_ip, user_agent, status, reason, occurred_at, details, before_snapshot, after_snapshot,
			signed, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, '')
		RETURNING id`,
		userID, entry.ActorRole, entry.Action, entry.TargetType, targetID, entry.CorrelationID.String(),
		entry.ClientIP, entry.UserAgent, int64(entry.Status), entry.Reason, entry.OccurredAt, rec.Details,
		before, after,
	).Scan(&rec.ID)
	if err != nil {
		return entity.AuditRecord{}, err
	}
	return rec, nil
}

func (r *PostgresRepository) Query(ctx context.Context, q entity.AuditQuery) ([]entity.AuditRecord, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if q.From != nil {
		add("occurred_at >= ?", q.From.UTC())
	}
	if q.To != nil {
		add("occurred_at <= ?", q.To.UTC())
	}
	if q.ActorUserID != nil {
		add("user_id = ?", *q.ActorUserID)
	}
	if q.Action != "" {
		add("LOWER(action) = LOWER(?)", q.Action)
	}
	if q.TargetType != "" {
		add("LOWER(target_type) = LOWER(?)", q.TargetType)
	}
	if q.TargetID != nil {
		add("target_id = ?", *q.TargetID)
	}
	if q.Status != nil {
		add("status = ?", int64(*q.Status))
	}
	if q.Signed != nil {
		add("signed = ?", *q.Signed)
	}

	query := `SELECT id, user_id, action, occurred_at, details, signed, signature FROM audit_records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY occurred_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.AuditRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) AppendSignature(ctx context.Context, id int64) bool {
	rec, err := r.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			r.log.Error(ctx, "audit lookup failed", logger.Int64("audit_id", id), logger.WithError(err))
		}
		return false
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE audit_records
		SET signed = TRUE,
			signature = $1,
			details = CASE WHEN details LIKE $2 THEN details ELSE details || $3 END
		WHERE id = $4`,
		r.signer.Sign(rec), "%"+entity.SignatureMarker, entity.SignatureMarker, id,
	)
	if err != nil {
		r.log.Error(ctx, "audit signature failed", logger.Int64("audit_id", id), logger.WithError(err))
		return false
	}
	return true
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (entity.AuditRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, action, occurred_at, details, signed, signature FROM audit_records WHERE id = $1`, id)
	return scanRecord(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (entity.AuditRecord, error) {
	var (
		rec    entity.AuditRecord
		userID sql.NullInt64
	)
	err := row.Scan(&rec.ID, &userID, &rec.Action, &rec.Timestamp, &rec.Details, &rec.Signed, &rec.Signature)
	if err != nil {
		return entity.AuditRecord{}, err
	}
	rec.UserID = userID.Int64
	rec.Timestamp = rec.Timestamp.UTC()
	return rec, nil
}

func snapshot(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
