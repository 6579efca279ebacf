package audit

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/clock"
)

// MemoryRepository is a single-process audit trail. Records are lost on
// restart; PostgresRepository is the durable counterpart.
type MemoryRepository struct {
	mu      sync.Mutex
	lastID  int64
	entries map[int64]entity.AuditEntry
	records map[int64]entity.AuditRecord
	clock   clock.Clock
	signer  outbound.Signer
}

func NewMemoryRepository(clk clock.Clock, signer outbound.Signer) *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[int64]entity.AuditEntry),
		records: make(map[int64]entity.AuditRecord),
		clock:   clk,
		signer:  signer,
	}
}

func (m *MemoryRepository) Write(ctx context.Context, entry entity.AuditEntry) bool {
	_, err := m.Record(ctx, entry)
	return err == nil
}

// Record stores the entry and returns the compact record it produced.
func (m *MemoryRepository) Record(_ context.Context, entry entity.AuditEntry) (entity.AuditRecord, error) {
	entry = entry.Normalize(m.clock.UtcNow())

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.lastID + 1
	if _, taken := m.records[id]; taken {
		return entity.AuditRecord{}, ErrIDTaken
	}

	rec := entity.AuditRecord{
		ID:        id,
		UserID:    entry.UserID(),
		Action:    entry.Action,
		Timestamp: entry.OccurredAt,
		Details:   entry.Details(),
	}
	m.entries[id] = entry
	m.records[id] = rec
	m.lastID = id
	return rec, nil
}

func (m *MemoryRepository) Query(_ context.Context, q entity.AuditQuery) ([]entity.AuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entity.AuditRecord, 0)
	for id, rec := range m.records {
		if matches(m.entries[id], rec, q) {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryRepository) AppendSignature(_ context.Context, id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return false
	}

	rec.Signature = m.signer.Sign(rec)
	rec.Signed = true
	if !strings.HasSuffix(rec.Details, entity.SignatureMarker) {
		rec.Details += entity.SignatureMarker
	}
	m.records[id] = rec
	return true
}

func (m *MemoryRepository) Get(id int64) (entity.AuditRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	return rec, ok
}

func matches(e entity.AuditEntry, rec entity.AuditRecord, q entity.AuditQuery) bool {
	if q.From != nil && rec.Timestamp.Before(*q.From) {
		return false
	}
	if q.To != nil && rec.Timestamp.After(*q.To) {
		return false
	}
	if q.ActorUserID != nil && (e.ActorUserID == nil || *e.ActorUserID != *q.ActorUserID) {
		return false
	}
	if q.Action != "" && !strings.EqualFold(rec.Action, q.Action) {
		return false
	}
	if q.TargetType != "" && !strings.EqualFold(e.TargetType, q.TargetType) {
		return false
	}
	if q.TargetID != nil && (e.TargetID == nil || *e.TargetID != *q.TargetID) {
		return false
	}
	if q.Status != nil && e.Status != *q.Status {
		return false
	}
	if q.Signed != nil && rec.Signed != *q.Signed {
		return false
	}
	return true
}
