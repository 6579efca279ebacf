package account

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

type UseCase interface {
	Open(ctx context.Context, input OpenInput) (operation.Result[int64], error)
	Close(ctx context.Context, input CloseInput) (operation.Result[CloseOutput], error)
	Modify(ctx context.Context, input ModifyInput) (operation.Result[int64], error)
	SetCurrency(ctx context.Context, input SetCurrencyInput) (operation.Result[int64], error)
	Deposit(ctx context.Context, input MovementInput) (operation.Result[MovementOutput], error)
	Withdraw(ctx context.Context, input MovementInput) (operation.Result[MovementOutput], error)
	Transfer(ctx context.Context, input TransferInput) (operation.Result[TransferOutput], error)
	Get(ctx context.Context, id int64) (operation.Result[Output], error)
	List(ctx context.Context, customerID int64) (operation.Result[[]Output], error)
	GetBalance(ctx context.Context, id int64) (operation.Result[int64], error)
	ListTransactions(ctx context.Context, accountID int64) (operation.Result[[]TransactionOutput], error)
}
