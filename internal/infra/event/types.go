package event

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

const AuditRecordedName = "audit.recorded"

type MessageHandler func(ctx context.Context, msg []byte, headers map[string]any) error

// ErrPermanent marks a failure that retrying cannot fix.
var ErrPermanent = errors.New("permanent failure")

type AuditRecordedPayload struct {
	RecordID   int64     `json:"record_id"`
	Action     string    `json:"action"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditRecorded announces a freshly written audit record that still needs
// a signature.
type AuditRecorded struct {
	payload AuditRecordedPayload
}

func NewAuditRecorded(rec entity.AuditRecord) *AuditRecorded {
	return &AuditRecorded{payload: AuditRecordedPayload{
		RecordID:   rec.ID,
		Action:     rec.Action,
		UserID:     rec.UserID,
		OccurredAt: rec.Timestamp,
	}}
}

func (e *AuditRecorded) GetID() string          { return "audit-" + strconv.FormatInt(e.payload.RecordID, 10) }
func (e *AuditRecorded) GetName() string        { return AuditRecordedName }
func (e *AuditRecorded) GetDateTime() time.Time { return e.payload.OccurredAt }
func (e *AuditRecorded) GetPayload() any        { return e.payload }
