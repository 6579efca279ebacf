package account

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// Transfer writes a debit on the source and a credit on the target grouped
// under the debit's id. Both land or neither does.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (operation.Result[TransferOutput], error) {
	from, to := input.FromAccountID, input.ToAccountID
	action := operation.Action{Name: "Transfer", TargetType: targetType, TargetID: &from}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[TransferOutput], error) {
		if from == to {
			return operation.Fail[TransferOutput]("transfer", entity.ErrSameAccount), nil
		}
		if input.Amount <= 0 {
			return operation.Fail[TransferOutput]("transfer", entity.ErrInvalidAmount), nil
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[TransferOutput] {
				source, err := repos.Accounts().GetByID(ctx, from)
				if err != nil {
					return operation.Fail[TransferOutput]("load source account", err)
				}
				target, err := repos.Accounts().GetByID(ctx, to)
				if err != nil {
					return operation.Fail[TransferOutput]("load target account", err)
				}

				if input.Currency != "" && input.Currency != source.Currency {
					return operation.Failed[TransferOutput](operation.CodeInvalidInput,
						fmt.Sprintf("source account holds %s, not %s", source.Currency, input.Currency), nil)
				}
				if source.Currency != target.Currency {
					return operation.Failed[TransferOutput](operation.CodeInvalidInput,
						fmt.Sprintf("cannot transfer %s into a %s account", source.Currency, target.Currency), nil)
				}
				if err := source.CanDebit(input.Amount); err != nil {
					return operation.Fail[TransferOutput]("debit source", err)
				}
				if err := target.CanCredit(input.Amount); err != nil {
					return operation.Fail[TransferOutput]("credit target", err)
				}

				now := s.clock.UtcNow()
				debitID, err := repos.Transactions().Insert(ctx, &entity.Transaction{
					AccountID:      from,
					Type:           entity.TransactionTransfer,
					AmountDelta:    -input.Amount,
					RelatedAccount: &to,
					CreatedAt:      now,
					Status:         entity.TransactionCompleted,
					Note:           input.Memo,
				})
				if err != nil {
					return operation.Fail[TransferOutput]("record debit", err)
				}
				if err := repos.Accounts().AdjustBalance(ctx, from, -input.Amount, now); err != nil {
					return operation.Fail[TransferOutput]("debit source", err)
				}

				creditID, err := repos.Transactions().Insert(ctx, &entity.Transaction{
					AccountID:      to,
					Type:           entity.TransactionTransfer,
					AmountDelta:    input.Amount,
					RelatedAccount: &from,
					CreatedAt:      now,
					Status:         entity.TransactionCompleted,
					GroupID:        &debitID,
					Note:           input.Memo,
				})
				if err != nil {
					return operation.Fail[TransferOutput]("record credit", err)
				}
				if err := repos.Accounts().AdjustBalance(ctx, to, input.Amount, now); err != nil {
					return operation.Fail[TransferOutput]("credit target", err)
				}

				out := TransferOutput{DebitTransactionID: debitID, CreditTransactionID: creditID}
				if out.FromBalance, err = repos.Accounts().GetBalance(ctx, from); err != nil {
					return operation.Fail[TransferOutput]("read source balance", err)
				}
				if out.ToBalance, err = repos.Accounts().GetBalance(ctx, to); err != nil {
					return operation.Fail[TransferOutput]("read target balance", err)
				}
				return operation.Ok(out)
			})
	})
}
