package card

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

type UseCase interface {
	Issue(ctx context.Context, input IssueInput) (operation.Result[Output], error)
	SetPIN(ctx context.Context, input PINInput) (operation.Result[int64], error)
	VerifyPIN(ctx context.Context, input PINInput) (operation.Result[VerifyOutput], error)
	List(ctx context.Context, accountID int64) (operation.Result[[]Output], error)
}
