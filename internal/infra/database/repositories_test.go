package database

import (
	"context"
	"testing"
	"time"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func seedCustomer(t *testing.T, repos outbound.RepositoryProvider, name, email, phone string) int64 {
	t.Helper()
	id, err := repos.Customers().Insert(context.Background(), &entity.Customer{
		Name: name, Email: email, Phone: phone, CreatedAt: &fixedNow,
	})
	require.NoError(t, err)
	return id
}

func seedAccount(t *testing.T, repos outbound.RepositoryProvider, customerID, balance int64) int64 {
	t.Helper()
	id, err := repos.Accounts().Insert(context.Background(), &entity.Account{
		CustomerID: customerID,
		Type:       entity.AccountChecking,
		Balance:    balance,
		Currency:   entity.CurrencyJPY,
		Status:     entity.AccountActive,
		OpenDate:   &fixedNow,
	})
	require.NoError(t, err)
	return id
}

func TestCustomerRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	gender := entity.GenderFemale
	idType := entity.IDTypePassport

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		//Arrange
		id, err := repos.Customers().Insert(ctx, &entity.Customer{
			Name:      "Ada Lovelace",
			Gender:    &gender,
			BirthDate: time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC),
			IDType:    &idType,
			IDNumber:  "P-123",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			CreatedAt: &fixedNow,
		})
		require.NoError(t, err)

		//Act
		got, err := repos.Customers().GetByID(ctx, id)

		//Assert
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
		require.NotNil(t, got.Gender)
		assert.Equal(t, entity.GenderFemale, *got.Gender)
		require.NotNil(t, got.IDType)
		assert.Equal(t, entity.IDTypePassport, *got.IDType)
		assert.Equal(t, 1990, got.BirthDate.Year())
		assert.Equal(t, entity.KYCUnreviewed, got.KYCStatus)
		require.NotNil(t, got.CreatedAt)
		assert.True(t, fixedNow.Equal(*got.CreatedAt))
	})
}

func TestCustomerRepository_GetByEmailOrPhone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		byEmail := seedCustomer(t, repos, "Email Owner", "shared@example.com", "555-0001")
		byPhone := seedCustomer(t, repos, "Phone Owner", "other@example.com", "555-0002")

		tests := []struct {
			name       string
			email      string
			phone      string
			expectedID int64
			expectErr  error
		}{
			{"Should prefer email when both match", "shared@example.com", "555-0002", byEmail, nil},
			{"Should fall back to phone", "missing@example.com", "555-0002", byPhone, nil},
			{"Should fall back to phone when email is blank", "", "555-0002", byPhone, nil},
			{"Should fail when nothing matches", "missing@example.com", "555-9999", 0, outbound.ErrNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c, err := repos.Customers().GetByEmailOrPhone(ctx, tt.email, tt.phone)
				if tt.expectErr != nil {
					assert.ErrorIs(t, err, tt.expectErr)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, c.ID)
			})
		}
	})
}

func TestCustomerRepository_SoftDeleteHidesCustomer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		id := seedCustomer(t, repos, "Gone", "gone@example.com", "")
		seedCustomer(t, repos, "Stays", "stays@example.com", "")

		require.NoError(t, repos.Customers().SoftDelete(ctx, id, "requested", fixedNow))

		_, err := repos.Customers().GetByID(ctx, id)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
		assert.ErrorIs(t, repos.Customers().SoftDelete(ctx, id, "again", fixedNow), outbound.ErrNotFound)

		all, err := repos.Customers().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Stays", all[0].Name)
	})
}

func TestCustomerAuthRepository_UpdateAndLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		id := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		require.NoError(t, repos.CustomerAuth().Insert(ctx, &entity.CustomerAuth{
			CustomerID: id, LoginID: "ada", PasswordHash: "old", CreatedAt: &fixedNow,
		}))

		require.NoError(t, repos.CustomerAuth().Update(ctx, &entity.CustomerAuth{
			CustomerID: id, LoginID: "ada", PasswordHash: "new", TwoFactorEnabled: true, UpdatedAt: &fixedNow,
		}))

		got, err := repos.CustomerAuth().GetByLoginID(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, id, got.CustomerID)
		assert.Equal(t, "new", got.PasswordHash)
		assert.True(t, got.TwoFactorEnabled)

		require.NoError(t, repos.CustomerAuth().SoftDelete(ctx, id, fixedNow))
		_, err = repos.CustomerAuth().GetByCustomerID(ctx, id)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})
}

func TestAccountRepository_AdjustBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		accountID := seedAccount(t, repos, customerID, 1000)

		tests := []struct {
			name            string
			id              int64
			delta           int64
			expectedErr     error
			expectedBalance int64
		}{
			{"Should credit", accountID, 500, nil, 1500},
			{"Should debit down to zero", accountID, -1500, nil, 0},
			{"Should refuse to overdraw", accountID, -1, entity.ErrInsufficientFunds, 0},
			{"Should report unknown account", 9999, 10, outbound.ErrNotFound, 0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := repos.Accounts().AdjustBalance(ctx, tt.id, tt.delta, fixedNow)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				} else {
					assert.NoError(t, err)
				}
				balance, _ := repos.Accounts().GetBalance(ctx, accountID)
				assert.Equal(t, tt.expectedBalance, balance)
			})
		}
	})
}

func TestAccountRepository_LockBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		accountID := seedAccount(t, repos, customerID, 1000)
		require.NoError(t, repos.Accounts().AdjustBalance(ctx, accountID, 250, fixedNow))

		balance, err := repos.Accounts().LockBalance(ctx, accountID, fixedNow.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1250), balance)

		acc, err := repos.Accounts().GetByID(ctx, accountID)
		require.NoError(t, err)
		require.NotNil(t, acc.UpdatedAt)
		assert.Equal(t, fixedNow.Add(time.Minute), acc.UpdatedAt.UTC())

		_, err = repos.Accounts().LockBalance(ctx, 9999, fixedNow)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})
}

func TestAccountRepository_AdjustBalanceRefusesClosedAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		accountID := seedAccount(t, repos, customerID, 0)
		require.NoError(t, repos.Accounts().Close(ctx, accountID, fixedNow))

		err := repos.Accounts().AdjustBalance(ctx, accountID, 500, fixedNow)

		assert.ErrorIs(t, err, entity.ErrAccountNotActive)
		balance, _ := repos.Accounts().GetBalance(ctx, accountID)
		assert.Equal(t, int64(0), balance)
	})
}

func TestAccountRepository_UpdateCurrencyRequiresEmptyActiveAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		funded := seedAccount(t, repos, customerID, 10)
		empty := seedAccount(t, repos, customerID, 0)

		changed, err := repos.Accounts().UpdateCurrency(ctx, funded, entity.CurrencyUSD, fixedNow)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = repos.Accounts().UpdateCurrency(ctx, empty, entity.CurrencyUSD, fixedNow)
		require.NoError(t, err)
		assert.True(t, changed)

		got, err := repos.Accounts().GetByID(ctx, empty)
		require.NoError(t, err)
		assert.Equal(t, entity.CurrencyUSD, got.Currency)

		require.NoError(t, repos.Accounts().Close(ctx, empty, fixedNow))
		closed, err := repos.Accounts().GetByID(ctx, empty)
		require.NoError(t, err)
		assert.True(t, closed.IsClosed)
		assert.Equal(t, entity.AccountClosed, closed.Status)
		assert.False(t, closed.IsActive())
		assert.ErrorIs(t, repos.Accounts().Close(ctx, empty, fixedNow), outbound.ErrNotFound)

		accounts, err := repos.Accounts().ListByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})
}

func TestTransactionRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		accountID := seedAccount(t, repos, customerID, 0)
		related := accountID

		first, err := repos.Transactions().Insert(ctx, &entity.Transaction{
			AccountID: accountID, Type: entity.TransactionDeposit, AmountDelta: 100,
			CreatedAt: fixedNow, Status: entity.TransactionCompleted,
		})
		require.NoError(t, err)
		second, err := repos.Transactions().Insert(ctx, &entity.Transaction{
			AccountID: accountID, Type: entity.TransactionTransfer, AmountDelta: -40, RelatedAccount: &related,
			CreatedAt: fixedNow.Add(time.Minute), Status: entity.TransactionCompleted, GroupID: &first, Note: "rent",
		})
		require.NoError(t, err)

		list, err := repos.Transactions().ListByAccount(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second, list[0].ID)
		assert.Equal(t, first, list[1].ID)
		require.NotNil(t, list[0].GroupID)
		assert.Equal(t, first, *list[0].GroupID)
		assert.Nil(t, list[1].RelatedAccount)

		delta, err := repos.Transactions().GetAmountDelta(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, int64(-40), delta)

		_, err = repos.Transactions().GetAmountDelta(ctx, 9999)
		assert.ErrorIs(t, err, outbound.ErrNotFound)
	})
}

func TestCardRepository_PINLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(repos outbound.RepositoryProvider) {
		customerID := seedCustomer(t, repos, "Ada", "ada@example.com", "")
		accountID := seedAccount(t, repos, customerID, 0)
		cardID, err := repos.Cards().Insert(ctx, &entity.Card{
			AccountID: accountID, Number: "4000000000000001", ExpiryYear: 2030, ExpiryMonth: 6,
			PINHash: "h1", Type: entity.CardDebit, Status: entity.CardActive, CreatedAt: fixedNow,
		})
		require.NoError(t, err)

		until := fixedNow.Add(entity.PINLockDuration)
		require.NoError(t, repos.Cards().UpdatePINFailCount(ctx, cardID, 3, &until))
		locked, err := repos.Cards().GetByID(ctx, cardID)
		require.NoError(t, err)
		assert.Equal(t, 3, locked.PINFailCount)
		assert.True(t, locked.IsLocked(fixedNow))

		require.NoError(t, repos.Cards().UpdatePIN(ctx, cardID, "h2"))
		reset, err := repos.Cards().GetByID(ctx, cardID)
		require.NoError(t, err)
		assert.Equal(t, "h2", reset.PINHash)
		assert.Zero(t, reset.PINFailCount)
		assert.Nil(t, reset.PINLockedUntil)

		active, err := repos.Cards().HasActive(ctx, accountID)
		require.NoError(t, err)
		assert.True(t, active)

		n, err := repos.Cards().DeactivateAll(ctx, accountID, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		active, err = repos.Cards().HasActive(ctx, accountID)
		require.NoError(t, err)
		assert.False(t, active)

		cards, err := repos.Cards().ListByAccount(ctx, accountID)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, entity.CardInactive, cards[0].Status)
		assert.NotNil(t, cards[0].DeactivatedAt)
	})
}
