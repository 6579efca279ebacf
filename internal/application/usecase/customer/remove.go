package customer

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

func (s *Service) Remove(ctx context.Context, input RemoveInput) (operation.Result[int64], error) {
	id := input.CustomerID
	action := operation.Action{Name: "RemoveCustomer", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				now := s.clock.UtcNow()
				if err := repos.Customers().SoftDelete(ctx, id, input.Reason, now); err != nil {
					return operation.Fail[int64]("delete customer", err)
				}
				if err := repos.CustomerAuth().SoftDelete(ctx, id, now); err != nil {
					return operation.Fail[int64]("delete customer credentials", err)
				}
				return operation.Ok(id)
			})
	})
}

func (s *Service) UpdateKYCStatus(ctx context.Context, input KYCInput) (operation.Result[int64], error) {
	id := input.CustomerID
	action := operation.Action{Name: "UpdateKYCStatus", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				if err := repos.Customers().UpdateKYCStatus(ctx, id, input.Status, s.clock.UtcNow()); err != nil {
					return operation.Fail[int64]("update kyc status", err)
				}
				return operation.Ok(id)
			})
	})
}
