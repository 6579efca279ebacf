package account

import (
	"context"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
)

func (s *Service) Get(ctx context.Context, id int64) (operation.Result[Output], error) {
	return operation.Execute(ctx, s.orchestrator, "GetAccount", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[Output] {
			acc, err := repos.Accounts().GetByID(ctx, id)
			if err != nil {
				return operation.Fail[Output]("load account", err)
			}
			return operation.Ok(toOutput(acc))
		})
}

func (s *Service) List(ctx context.Context, customerID int64) (operation.Result[[]Output], error) {
	return operation.Execute(ctx, s.orchestrator, "ListAccounts", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[[]Output] {
			accounts, err := repos.Accounts().ListByCustomer(ctx, customerID)
			if err != nil {
				return operation.Fail[[]Output]("list accounts", err)
			}
			out := make([]Output, 0, len(accounts))
			for i := range accounts {
				out = append(out, toOutput(&accounts[i]))
			}
			return operation.Ok(out)
		})
}

func (s *Service) GetBalance(ctx context.Context, id int64) (operation.Result[int64], error) {
	return operation.Execute(ctx, s.orchestrator, "GetBalance", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
			balance, err := repos.Accounts().GetBalance(ctx, id)
			if err != nil {
				return operation.Fail[int64]("read balance", err)
			}
			return operation.Ok(balance)
		})
}

func (s *Service) ListTransactions(ctx context.Context, accountID int64) (operation.Result[[]TransactionOutput], error) {
	return operation.Execute(ctx, s.orchestrator, "ListTransactions", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[[]TransactionOutput] {
			txs, err := repos.Transactions().ListByAccount(ctx, accountID)
			if err != nil {
				return operation.Fail[[]TransactionOutput]("list transactions", err)
			}
			out := make([]TransactionOutput, 0, len(txs))
			for i := range txs {
				out = append(out, toTransactionOutput(&txs[i]))
			}
			return operation.Ok(out)
		})
}
