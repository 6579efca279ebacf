package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/pkg/logger"
)

// NewSignHandler signs the record named by an audit.recorded message.
func NewSignHandler(repo outbound.AuditRepository, log logger.Logger) MessageHandler {
	return func(ctx context.Context, msg []byte, _ map[string]any) error {
		var payload AuditRecordedPayload
		if err := json.Unmarshal(msg, &payload); err != nil {
			return fmt.Errorf("%w: decode payload: %v", ErrPermanent, err)
		}
		if payload.RecordID <= 0 {
			return fmt.Errorf("%w: missing record id", ErrPermanent)
		}

		if !repo.AppendSignature(ctx, payload.RecordID) {
			return fmt.Errorf("audit record %d not signed", payload.RecordID)
		}

		log.Debug(ctx, "audit record signed", logger.Int64("audit_id", payload.RecordID))
		return nil
	}
}
