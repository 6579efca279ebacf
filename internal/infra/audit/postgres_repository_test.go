package audit

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/clock"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLRepo(t *testing.T) (*PostgresRepository, *clock.Fake) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	clk := clock.NewFake(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	return NewPostgresRepository(db, clk, NewHMACSigner([]byte("k")), logger.NewNop()), clk
}

func TestPostgresRepository_WriteAndQuery(t *testing.T) {
	//Arrange
	repo, clk := newSQLRepo(t)
	ctx := context.Background()
	statuses := []entity.AuditStatus{entity.AuditSuccess, entity.AuditDenied, entity.AuditSuccess}
	actors := []int64{1, 2, 1}
	for i := range statuses {
		clk.Advance(time.Second)
		require.True(t, repo.Write(ctx, entity.AuditEntry{
			Action:        "OpenAccount",
			TargetType:    "Account",
			TargetID:      ptr(int64(100 + i)),
			ActorUserID:   ptr(actors[i]),
			Status:        statuses[i],
			AfterSnapshot: map[string]int{"n": i},
		}))
	}

	//Act
	all, errAll := repo.Query(ctx, entity.AuditQuery{})
	conj, errConj := repo.Query(ctx, entity.AuditQuery{ActorUserID: ptr(int64(2)), Status: ptr(entity.AuditDenied)})
	byAction, errAction := repo.Query(ctx, entity.AuditQuery{Action: "openaccount", TargetType: "ACCOUNT", TargetID: ptr(int64(102))})
	from := clk.UtcNow().Add(-1500 * time.Millisecond)
	recent, errRecent := repo.Query(ctx, entity.AuditQuery{From: &from})

	//Assert
	require.NoError(t, errAll)
	require.NoError(t, errConj)
	require.NoError(t, errAction)
	require.NoError(t, errRecent)

	require.Len(t, all, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})

	require.Len(t, conj, 1)
	assert.Equal(t, int64(2), conj[0].ID)

	require.Len(t, byAction, 1)
	assert.Equal(t, int64(3), byAction[0].ID)

	require.Len(t, recent, 2)
}

func TestPostgresRepository_AppendSignature(t *testing.T) {
	repo, _ := newSQLRepo(t)
	ctx := context.Background()
	require.True(t, repo.Write(ctx, entity.AuditEntry{Action: "CloseAccount"}))
	original, err := repo.Get(ctx, 1)
	require.NoError(t, err)

	assert.False(t, repo.AppendSignature(ctx, 42))
	assert.True(t, repo.AppendSignature(ctx, 1))
	assert.True(t, repo.AppendSignature(ctx, 1))

	rec, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, rec.Signed)
	assert.Equal(t, original.Details+entity.SignatureMarker, rec.Details)
	assert.True(t, NewHMACSigner([]byte("k")).Verify(rec))

	unsigned := false
	pending, err := repo.Query(ctx, entity.AuditQuery{Signed: &unsigned})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestActorFilterExcludesAnonymousEntries(t *testing.T) {
	tests := []struct {
		name string
		repo func(t *testing.T) outbound.AuditRepository
	}{
		{name: "postgres", repo: func(t *testing.T) outbound.AuditRepository { r, _ := newSQLRepo(t); return r }},
		{name: "memory", repo: func(t *testing.T) outbound.AuditRepository { r, _ := newMemory(); return r }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			//Arrange
			repo := tt.repo(t)
			ctx := context.Background()
			require.True(t, repo.Write(ctx, entity.AuditEntry{Action: "Login", Status: entity.AuditFailed}))
			require.True(t, repo.Write(ctx, entity.AuditEntry{Action: "Login", ActorUserID: ptr(int64(0)), Status: entity.AuditSuccess}))

			//Act
			byZero, errZero := repo.Query(ctx, entity.AuditQuery{ActorUserID: ptr(int64(0))})
			all, errAll := repo.Query(ctx, entity.AuditQuery{})

			//Assert
			require.NoError(t, errZero)
			require.NoError(t, errAll)
			require.Len(t, byZero, 1)
			assert.Equal(t, int64(2), byZero[0].ID)
			require.Len(t, all, 2)
			for _, rec := range all {
				assert.Equal(t, int64(0), rec.UserID)
			}
		})
	}
}
