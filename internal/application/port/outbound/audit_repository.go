package outbound

import (
	"context"

	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// AuditRepository is best effort: write failures are reported as false and
// never abort the operation being audited.
type AuditRepository interface {
	Write(ctx context.Context, entry entity.AuditEntry) bool
	Query(ctx context.Context, q entity.AuditQuery) ([]entity.AuditRecord, error)
	AppendSignature(ctx context.Context, id int64) bool
}

type Signer interface {
	Sign(record entity.AuditRecord) string
}
