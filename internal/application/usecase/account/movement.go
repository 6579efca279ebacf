package account

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

func (s *Service) Deposit(ctx context.Context, input MovementInput) (operation.Result[MovementOutput], error) {
	return s.move(ctx, "Deposit", entity.TransactionDeposit, input, input.Amount)
}

func (s *Service) Withdraw(ctx context.Context, input MovementInput) (operation.Result[MovementOutput], error) {
	return s.move(ctx, "Withdraw", entity.TransactionWithdrawal, input, -input.Amount)
}

func (s *Service) move(ctx context.Context, name string, kind entity.TransactionType, input MovementInput, delta int64) (operation.Result[MovementOutput], error) {
	id := input.AccountID
	action := operation.Action{Name: name, TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[MovementOutput], error) {
		return operation.Execute(ctx, s.orchestrator, name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[MovementOutput] {
				acc, err := repos.Accounts().GetByID(ctx, id)
				if err != nil {
					return operation.Fail[MovementOutput]("load account", err)
				}
				if delta > 0 {
					err = acc.CanCredit(input.Amount)
				} else {
					err = acc.CanDebit(input.Amount)
				}
				if err != nil {
					return operation.Fail[MovementOutput](name, err)
				}

				now := s.clock.UtcNow()
				txID, err := repos.Transactions().Insert(ctx, &entity.Transaction{
					AccountID:   id,
					Type:        kind,
					AmountDelta: delta,
					CreatedAt:   now,
					Status:      entity.TransactionCompleted,
					Note:        input.Note,
				})
				if err != nil {
					return operation.Fail[MovementOutput]("record transaction", err)
				}
				if err := repos.Accounts().AdjustBalance(ctx, id, delta, now); err != nil {
					return operation.Fail[MovementOutput]("adjust balance", err)
				}

				balance, err := repos.Accounts().GetBalance(ctx, id)
				if err != nil {
					return operation.Fail[MovementOutput]("read balance", err)
				}
				return operation.Ok(MovementOutput{AccountID: id, TransactionID: txID, Balance: balance})
			})
	})
}
