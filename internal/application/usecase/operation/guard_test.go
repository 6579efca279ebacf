package operation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/internal/infra/audit"
	"github.com/DioGolang/GoBank/internal/infra/storage"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	guard *Guard
	store *storage.MemoryIdempotencyStore
	audit *audit.MemoryRepository
	clock *clock.Fake
}

func newGuardFixture() guardFixture {
	clk := clock.NewFake(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	store := storage.NewMemoryIdempotencyStore(clk)
	repo := audit.NewMemoryRepository(clk, audit.PlainSigner{})
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry(), "test")
	return guardFixture{
		guard: NewGuard(store, repo, clk, time.Minute, logger.NewNop(), m),
		store: store,
		audit: repo,
		clock: clk,
	}
}

func requestCtx(key string) context.Context {
	actor := int64(11)
	return WithRequest(context.Background(), Request{
		IdempotencyKey: key,
		ActorUserID:    &actor,
		ActorRole:      "teller",
		ClientIP:       "192.0.2.1",
		CorrelationID:  uuid.MustParse("0b7c6f55-7f6e-4d0a-9b1c-3f1d2e4a5b6c"),
	})
}

type failingStore struct{}

func (failingStore) TryStart(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingStore) Complete(context.Context, string) error { return nil }
func (failingStore) GetStatus(context.Context, string) (entity.IdempotencyStatus, error) {
	return entity.IdempotencyNone, nil
}

func TestGuarded_RejectsDuplicateKey(t *testing.T) {
	//Arrange
	fx := newGuardFixture()
	ctx := requestCtx("req-1")
	calls := 0
	run := func(ctx context.Context) (Result[int64], error) {
		calls++
		return Ok(int64(99)), nil
	}
	action := Action{Name: "OpenAccount", TargetType: "Account"}

	//Act
	first, err1 := Guarded(ctx, fx.guard, action, run)
	second, err2 := Guarded(ctx, fx.guard, action, run)

	//Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, first.IsOk())
	require.False(t, second.IsOk())
	assert.Equal(t, CodeDuplicateRequest, second.Failure().Code)
	assert.Equal(t, 1, calls)

	denied := entity.AuditDenied
	records, err := fx.audit.Query(context.Background(), entity.AuditQuery{Status: &denied})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Details, "reason=duplicate request")
	assert.Contains(t, records[0].Details, "actor=11(teller)")
}

func TestGuarded_SuccessCompletesKeyAndAudits(t *testing.T) {
	fx := newGuardFixture()

	res, err := Guarded(requestCtx("req-2"), fx.guard, Action{Name: "RegisterCustomer", TargetType: "Customer"},
		func(ctx context.Context) (Result[int64], error) { return Ok(int64(5)), nil })

	require.NoError(t, err)
	require.True(t, res.IsOk())

	status, err := fx.store.GetStatus(context.Background(), "RegisterCustomer:req-2")
	require.NoError(t, err)
	assert.Equal(t, entity.IdempotencyCompleted, status)

	rec, ok := fx.audit.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(11), rec.UserID)
	assert.Equal(t,
		"action=RegisterCustomer; target=Customer/5; status=Success; reason=; actor=11(teller); corr=0b7c6f55-7f6e-4d0a-9b1c-3f1d2e4a5b6c; ip=192.0.2.1",
		rec.Details)
}

func TestGuarded_FailureKeepsKeyInProgress(t *testing.T) {
	fx := newGuardFixture()
	ctx := requestCtx("req-3")
	action := Action{Name: "Withdraw", TargetType: "Account"}

	res, err := Guarded(ctx, fx.guard, action, func(ctx context.Context) (Result[int64], error) {
		return Fail[int64]("debit", entity.ErrInsufficientFunds), nil
	})

	require.NoError(t, err)
	assert.Equal(t, CodeInsufficientFunds, res.Failure().Code)
	status, _ := fx.store.GetStatus(context.Background(), "Withdraw:req-3")
	assert.Equal(t, entity.IdempotencyInProgress, status)

	failed := entity.AuditFailed
	records, _ := fx.audit.Query(context.Background(), entity.AuditQuery{Status: &failed})
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Details, "insufficient funds")

	// the same key is refused until it expires
	retry, _ := Guarded(ctx, fx.guard, action, func(ctx context.Context) (Result[int64], error) {
		return Ok(int64(1)), nil
	})
	assert.Equal(t, CodeDuplicateRequest, retry.Failure().Code)

	fx.clock.Advance(2 * time.Minute)
	again, _ := Guarded(ctx, fx.guard, action, func(ctx context.Context) (Result[int64], error) {
		return Ok(int64(1)), nil
	})
	assert.True(t, again.IsOk())
}

func TestGuarded_FailsClosedWhenStoreIsDown(t *testing.T) {
	fx := newGuardFixture()
	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry(), "test")
	g := NewGuard(failingStore{}, fx.audit, fx.clock, time.Minute, logger.NewNop(), m)
	called := false

	_, err := Guarded(requestCtx("req-4"), g, Action{Name: "Deposit"}, func(ctx context.Context) (Result[int64], error) {
		called = true
		return Ok(int64(1)), nil
	})

	assert.ErrorIs(t, err, ErrIdempotencyUnavailable)
	assert.False(t, called)
}

func TestGuarded_WithoutKeySkipsStore(t *testing.T) {
	fx := newGuardFixture()
	ctx := requestCtx("")
	calls := 0

	for i := 0; i < 2; i++ {
		res, err := Guarded(ctx, fx.guard, Action{Name: "VerifyPIN"}, func(ctx context.Context) (Result[bool], error) {
			calls++
			return Ok(true), nil
		})
		require.NoError(t, err)
		assert.True(t, res.IsOk())
	}

	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, fx.store.Len())
}
