package account

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

// Modify writes only the attributes that differ from the stored account.
func (s *Service) Modify(ctx context.Context, input ModifyInput) (operation.Result[int64], error) {
	id := input.AccountID
	action := operation.Action{Name: "ModifyAccount", TargetType: targetType, TargetID: &id}
	if before, err := s.Get(ctx, id); err == nil && before.IsOk() {
		action.Before = before.Value()
	}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		if err := input.Currency.Validate(); err != nil {
			return operation.Fail[int64]("modify account", err), nil
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				now := s.clock.UtcNow()

				if input.TransactionID != 0 {
					delta, err := repos.Transactions().GetAmountDelta(ctx, input.TransactionID)
					if err != nil {
						return operation.Fail[int64]("load transaction amount", err)
					}
					if delta != 0 {
						if err := repos.Accounts().AdjustBalance(ctx, id, delta, now); err != nil {
							return operation.Fail[int64]("adjust balance", err)
						}
					}
				}

				current, err := repos.Accounts().GetByID(ctx, id)
				if err != nil {
					return operation.Fail[int64]("load account", err)
				}

				if input.Currency != current.Currency {
					changed, err := repos.Accounts().UpdateCurrency(ctx, id, input.Currency, now)
					if err != nil {
						return operation.Fail[int64]("update currency", err)
					}
					if !changed {
						return currencyLocked(id)
					}
				}
				if input.Status != current.Status {
					if err := repos.Accounts().UpdateStatus(ctx, id, input.Status, now); err != nil {
						return operation.Fail[int64]("update status", err)
					}
				}
				if input.Type != current.Type {
					if err := repos.Accounts().UpdateType(ctx, id, input.Type, now); err != nil {
						return operation.Fail[int64]("update account type", err)
					}
				}
				return operation.Ok(id)
			})
	})
}

func (s *Service) SetCurrency(ctx context.Context, input SetCurrencyInput) (operation.Result[int64], error) {
	id := input.AccountID
	action := operation.Action{Name: "SetCurrency", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		if err := input.Currency.Validate(); err != nil {
			return operation.Fail[int64]("set currency", err), nil
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				if _, err := repos.Accounts().GetByID(ctx, id); err != nil {
					return operation.Fail[int64]("load account", err)
				}
				changed, err := repos.Accounts().UpdateCurrency(ctx, id, input.Currency, s.clock.UtcNow())
				if err != nil {
					return operation.Fail[int64]("update currency", err)
				}
				if !changed {
					return currencyLocked(id)
				}
				return operation.Ok(id)
			})
	})
}

func currencyLocked(id int64) operation.Result[int64] {
	return operation.Failed[int64](operation.CodeInvalidState,
		fmt.Sprintf("currency of account %d can only change while it is active with a zero balance", id), nil)
}
