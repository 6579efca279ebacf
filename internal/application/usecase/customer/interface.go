package customer

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (operation.Result[int64], error)
	Modify(ctx context.Context, input ModifyInput) (operation.Result[int64], error)
	Remove(ctx context.Context, input RemoveInput) (operation.Result[int64], error)
	UpdateKYCStatus(ctx context.Context, input KYCInput) (operation.Result[int64], error)
	Get(ctx context.Context, id int64) (operation.Result[Output], error)
	List(ctx context.Context) (operation.Result[[]Output], error)
}
