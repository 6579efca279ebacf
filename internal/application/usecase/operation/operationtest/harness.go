// Package operationtest wires an orchestrator and guard over a private sqlite
// database for use-case tests.
package operationtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/infra/audit"
	"github.com/DioGolang/GoBank/internal/infra/database"
	"github.com/DioGolang/GoBank/internal/infra/database/dbtest"
	"github.com/DioGolang/GoBank/internal/infra/storage"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/DioGolang/GoBank/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var Epoch = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

type Harness struct {
	DB           *sql.DB
	Clock        *clock.Fake
	Orchestrator *operation.Orchestrator
	Guard        *operation.Guard
	Audit        *audit.MemoryRepository
	Idempotency  *storage.MemoryIdempotencyStore
	Hasher       *security.Hasher
}

func New(t testing.TB) *Harness {
	t.Helper()

	db := dbtest.Open(t)
	clk := clock.NewFake(Epoch)
	log := logger.NewNop()
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry(), "test")

	units := database.NewUnitOfWorkFactory(database.NewConnectionFactory(database.DefaultDataSource, db), sql.LevelDefault)
	store := storage.NewMemoryIdempotencyStore(clk)
	auditRepo := audit.NewMemoryRepository(clk, audit.PlainSigner{})

	// low iteration count keeps the tests fast
	hasher, err := security.NewHasher(security.Options{Iterations: 100})
	require.NoError(t, err)

	return &Harness{
		DB:           db,
		Clock:        clk,
		Orchestrator: operation.NewOrchestrator(units, log, m),
		Guard:        operation.NewGuard(store, auditRepo, clk, time.Hour, log, m),
		Audit:        auditRepo,
		Idempotency:  store,
		Hasher:       hasher,
	}
}

// Repos runs fn inside a committed unit of work, for seeding and asserting
// on stored rows.
func (h *Harness) Repos(t testing.TB, fn func(repos outbound.RepositoryProvider)) {
	t.Helper()

	uow, err := database.Begin(context.Background(), database.NewConnectionFactory(database.DefaultDataSource, h.DB), true, sql.LevelDefault)
	require.NoError(t, err)
	defer uow.Close()

	fn(uow.Repositories())
	require.NoError(t, uow.Commit())
}

// Count returns the number of rows in table.
func (h *Harness) Count(t testing.TB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, h.DB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// Ctx returns a context carrying an actor and the given idempotency key.
func Ctx(key string) context.Context {
	actor := int64(1)
	return operation.WithRequest(context.Background(), operation.Request{
		IdempotencyKey: key,
		ActorUserID:    &actor,
		ActorRole:      "admin",
		ClientIP:       "127.0.0.1",
	})
}
