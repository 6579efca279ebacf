package account

import (
	"context"
	"errors"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

func (s *Service) Open(ctx context.Context, input OpenInput) (operation.Result[int64], error) {
	action := operation.Action{Name: "OpenAccount", TargetType: targetType}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		if err := input.Currency.Validate(); err != nil {
			return operation.Fail[int64]("open account", err), nil
		}
		if input.InitialDeposit < 0 {
			return operation.Fail[int64]("open account", entity.ErrInvalidAmount), nil
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				owner, err := repos.Customers().GetByEmailOrPhone(ctx, input.Email, input.Phone)
				if errors.Is(err, outbound.ErrNotFound) {
					return operation.Failed[int64](operation.CodeCustomerNotFound, "no customer matches the email or phone", err)
				}
				if err != nil {
					return operation.Fail[int64]("find customer", err)
				}

				now := s.clock.UtcNow()
				id, err := repos.Accounts().Insert(ctx, &entity.Account{
					CustomerID: owner.ID,
					Type:       input.Type,
					Balance:    input.InitialDeposit,
					Currency:   input.Currency,
					Status:     entity.AccountActive,
					OpenDate:   &now,
				})
				if err != nil {
					return operation.Fail[int64]("insert account", err)
				}

				if input.InitialDeposit > 0 {
					_, err = repos.Transactions().Insert(ctx, &entity.Transaction{
						AccountID:   id,
						Type:        entity.TransactionDeposit,
						AmountDelta: input.InitialDeposit,
						CreatedAt:   now,
						Status:      entity.TransactionCompleted,
						Note:        "Initial deposit",
					})
					if err != nil {
						return operation.Fail[int64]("record initial deposit", err)
					}
				}
				return operation.Ok(id)
			})
	})
}
