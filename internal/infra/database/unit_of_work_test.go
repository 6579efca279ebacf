package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitOnlyOnce(t *testing.T) {
	//Arrange
	db := newTestDB(t)
	uow, err := Begin(context.Background(), NewConnectionFactory("", db), true, sql.LevelDefault)
	require.NoError(t, err)
	defer uow.Close()

	//Act
	first := uow.Commit()
	second := uow.Commit()
	rollback := uow.Rollback()

	//Assert
	assert.True(t, uow.Transactional())
	assert.NoError(t, first)
	assert.ErrorIs(t, second, outbound.ErrInvalidState)
	assert.NoError(t, rollback, "rollback after resolution is a no-op")
}

func TestUnitOfWork_NonTransactionalRejectsResolution(t *testing.T) {
	db := newTestDB(t)
	uow, err := Begin(context.Background(), NewConnectionFactory("", db), false, sql.LevelDefault)
	require.NoError(t, err)
	defer uow.Close()

	assert.False(t, uow.Transactional())
	assert.ErrorIs(t, uow.Commit(), outbound.ErrInvalidState)
	assert.ErrorIs(t, uow.Rollback(), outbound.ErrInvalidState)
}

func TestUnitOfWork_RepeatedRollbackIsSafe(t *testing.T) {
	db := newTestDB(t)
	uow, err := Begin(context.Background(), NewConnectionFactory("", db), true, sql.LevelDefault)
	require.NoError(t, err)
	defer uow.Close()

	assert.NoError(t, uow.Rollback())
	assert.NoError(t, uow.Rollback())
	assert.ErrorIs(t, uow.Commit(), outbound.ErrInvalidState)
}

func TestUnitOfWork_CloseReleasesConnectionOnce(t *testing.T) {
	//Arrange
	db := newTestDB(t)
	factory := NewConnectionFactory("", db)
	uow, err := Begin(context.Background(), factory, true, sql.LevelDefault)
	require.NoError(t, err)

	//Act
	firstErr := uow.Close()
	secondErr := uow.Close()

	//Assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)

	// the pool holds a single connection, so this blocks if it leaked
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	next, err := Begin(ctx, factory, false, sql.LevelDefault)
	require.NoError(t, err)
	assert.NoError(t, next.Close())
}

func TestUnitOfWork_CloseWithoutCommitDiscardsWrites(t *testing.T) {
	//Arrange
	db := newTestDB(t)
	factory := NewConnectionFactory("", db)
	ctx := context.Background()

	uow, err := Begin(ctx, factory, true, sql.LevelDefault)
	require.NoError(t, err)
	id, err := uow.Repositories().Customers().Insert(ctx, &entity.Customer{Name: "Ada"})
	require.NoError(t, err)

	//Act
	require.NoError(t, uow.Close())

	//Assert
	reader, err := Begin(ctx, factory, false, sql.LevelDefault)
	require.NoError(t, err)
	defer reader.Close()
	_, err = reader.Repositories().Customers().GetByID(ctx, id)
	assert.ErrorIs(t, err, outbound.ErrNotFound)
}

func TestUnitOfWork_RollbackRevertsEveryRepository(t *testing.T) {
	//Arrange
	db := newTestDB(t)
	factory := NewConnectionFactory("", db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	uow, err := Begin(ctx, factory, true, sql.LevelDefault)
	require.NoError(t, err)
	repos := uow.Repositories()

	customerID, err := repos.Customers().Insert(ctx, &entity.Customer{Name: "Grace", CreatedAt: &now})
	require.NoError(t, err)
	require.NoError(t, repos.CustomerAuth().Insert(ctx, &entity.CustomerAuth{CustomerID: customerID, LoginID: "grace", PasswordHash: "h"}))
	accountID, err := repos.Accounts().Insert(ctx, &entity.Account{CustomerID: customerID, Currency: entity.CurrencyJPY, OpenDate: &now})
	require.NoError(t, err)

	//Act
	require.NoError(t, uow.Rollback())
	require.NoError(t, uow.Close())

	//Assert
	reader, err := Begin(ctx, factory, false, sql.LevelDefault)
	require.NoError(t, err)
	defer reader.Close()
	_, err = reader.Repositories().Customers().GetByID(ctx, customerID)
	assert.ErrorIs(t, err, outbound.ErrNotFound)
	_, err = reader.Repositories().CustomerAuth().GetByCustomerID(ctx, customerID)
	assert.ErrorIs(t, err, outbound.ErrNotFound)
	_, err = reader.Repositories().Accounts().GetByID(ctx, accountID)
	assert.ErrorIs(t, err, outbound.ErrNotFound)
}

func TestConnectionFactory_Errors(t *testing.T) {
	t.Run("Should fail with configuration error without a pool", func(t *testing.T) {
		_, err := NewConnectionFactory("bankingdb", nil).GetConnection(context.Background(), true)
		assert.ErrorIs(t, err, outbound.ErrConfiguration)
	})

	t.Run("Should fail with connection error on a cancelled context", func(t *testing.T) {
		db := newTestDB(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewConnectionFactory("bankingdb", db).GetConnection(ctx, false)
		assert.ErrorIs(t, err, outbound.ErrConnection)
	})

	t.Run("Should report requested mode and source", func(t *testing.T) {
		db := newTestDB(t)

		c, err := NewConnectionFactory("", db).GetConnection(context.Background(), true)
		require.NoError(t, err)
		defer c.Conn.Close()

		assert.True(t, c.Transactional)
		assert.Equal(t, DefaultDataSource, c.Source)
	})

	t.Run("Should reject empty dsn on open", func(t *testing.T) {
		_, err := Open(context.Background(), "postgres", "", PoolOptions{})
		assert.ErrorIs(t, err, outbound.ErrConfiguration)
	})
}

func TestUnitOfWorkFactory_PropagatesConnectionErrors(t *testing.T) {
	f := NewUnitOfWorkFactory(NewConnectionFactory("", nil), sql.LevelReadCommitted)

	uow, err := f.Begin(context.Background(), true)

	assert.Nil(t, uow)
	assert.ErrorIs(t, err, outbound.ErrConfiguration)
}
