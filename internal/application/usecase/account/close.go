package account

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
)

// Close pays out the remaining balance, closes the account and deactivates
// its cards. With a transfer payout the target is credited in the same
// transaction, so a rejected credit undoes the whole closing.
func (s *Service) Close(ctx context.Context, input CloseInput) (operation.Result[CloseOutput], error) {
	id := input.AccountID
	action := operation.Action{Name: "CloseAccount", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[CloseOutput], error) {
		switch input.Payout {
		case entity.TransactionWithdrawal:
		case entity.TransactionTransfer:
			if input.PayoutTargetAccountID == nil {
				return operation.Failed[CloseOutput](operation.CodeInvalidInput, "transfer payout needs a target account", nil), nil
			}
			if *input.PayoutTargetAccountID == id {
				return operation.Fail[CloseOutput]("close account", entity.ErrSameAccount), nil
			}
		default:
			return operation.Failed[CloseOutput](operation.CodeInvalidInput, "payout must be a withdrawal or a transfer", nil), nil
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[CloseOutput] {
				return s.close(ctx, repos, input)
			})
	})
}

func (s *Service) close(ctx context.Context, repos outbound.RepositoryProvider, input CloseInput) operation.Result[CloseOutput] {
	now := s.clock.UtcNow()
	id := input.AccountID

	acc, err := repos.Accounts().GetByID(ctx, id)
	if err != nil {
		return operation.Fail[CloseOutput]("load account", err)
	}
	if acc.IsClosed {
		return operation.Failed[CloseOutput](operation.CodeInvalidState, fmt.Sprintf("account %d is already closed", id), nil)
	}

	balance, err := repos.Accounts().LockBalance(ctx, id, now)
	if err != nil {
		return operation.Fail[CloseOutput]("lock balance", err)
	}

	debitID, err := repos.Transactions().Insert(ctx, &entity.Transaction{
		AccountID:      id,
		Type:           input.Payout,
		AmountDelta:    -balance,
		RelatedAccount: input.PayoutTargetAccountID,
		CreatedAt:      now,
		Status:         entity.TransactionCompleted,
		Note:           "Close Account",
	})
	if err != nil {
		return operation.Fail[CloseOutput]("record payout", err)
	}
	if balance > 0 {
		if err := repos.Accounts().AdjustBalance(ctx, id, -balance, now); err != nil {
			return operation.Fail[CloseOutput]("debit closing balance", err)
		}
	}

	if err := repos.Accounts().Close(ctx, id, now); err != nil {
		return operation.Fail[CloseOutput]("close account", err)
	}
	cards, err := repos.Cards().DeactivateAll(ctx, id, now)
	if err != nil {
		return operation.Fail[CloseOutput]("deactivate cards", err)
	}

	out := CloseOutput{AccountID: id, PaidOut: balance, DebitTransactionID: debitID, CardsDeactivated: cards}
	if input.Payout != entity.TransactionTransfer {
		return operation.Ok(out)
	}

	targetID := *input.PayoutTargetAccountID
	target, err := repos.Accounts().GetByID(ctx, targetID)
	if err != nil {
		return operation.Fail[CloseOutput]("load payout target", err)
	}
	if !target.IsActive() {
		return operation.Fail[CloseOutput](fmt.Sprintf("payout target %d", targetID), entity.ErrAccountNotActive)
	}
	if target.Currency != acc.Currency {
		return operation.Failed[CloseOutput](operation.CodeInvalidInput,
			fmt.Sprintf("payout target %d holds %s, account holds %s", targetID, target.Currency, acc.Currency), nil)
	}

	creditID, err := repos.Transactions().Insert(ctx, &entity.Transaction{
		AccountID:      targetID,
		Type:           entity.TransactionTransfer,
		AmountDelta:    balance,
		RelatedAccount: &id,
		CreatedAt:      now,
		Status:         entity.TransactionCompleted,
		GroupID:        &debitID,
		Note:           "Receive from closed account",
	})
	if err != nil {
		return operation.Fail[CloseOutput]("record payout credit", err)
	}
	if balance > 0 {
		if err := repos.Accounts().AdjustBalance(ctx, targetID, balance, now); err != nil {
			return operation.Fail[CloseOutput]("credit payout target", err)
		}
	}

	out.CreditTransactionID = &creditID
	return operation.Ok(out)
}
