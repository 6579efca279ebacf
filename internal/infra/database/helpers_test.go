package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/infra/database/dbtest"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	return dbtest.Open(t)
}

// inTx runs fn inside a committed unit of work.
func inTx(t *testing.T, db *sql.DB, fn func(repos outbound.RepositoryProvider)) {
	t.Helper()

	uow, err := Begin(context.Background(), NewConnectionFactory("", db), true, sql.LevelDefault)
	require.NoError(t, err)
	defer uow.Close()

	fn(uow.Repositories())
	require.NoError(t, uow.Commit())
}
