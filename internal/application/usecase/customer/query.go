package customer

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

func (s *Service) Get(ctx context.Context, id int64) (operation.Result[Output], error) {
	return operation.Execute(ctx, s.orchestrator, "GetCustomer", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[Output] {
			c, err := repos.Customers().GetByID(ctx, id)
			if err != nil {
				return operation.Fail[Output]("load customer", err)
			}
			return operation.Ok(toOutput(c))
		})
}

func (s *Service) List(ctx context.Context) (operation.Result[[]Output], error) {
	return operation.Execute(ctx, s.orchestrator, "ListCustomers", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[[]Output] {
			customers, err := repos.Customers().ListAll(ctx)
			if err != nil {
				return operation.Fail[[]Output]("list customers", err)
			}
			out := make([]Output, 0, len(customers))
			for i := range customers {
				out = append(out, toOutput(&customers[i]))
			}
			return operation.Ok(out)
		})
}
