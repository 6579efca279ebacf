package card

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/security"
)

const validYears = 5

func (s *Service) Issue(ctx context.Context, input IssueInput) (operation.Result[Output], error) {
	action := operation.Action{Name: "IssueCard", TargetType: targetType}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[Output], error) {
		if !validPIN(input.PIN) {
			return invalidPIN[Output](), nil
		}
		pinHash, err := s.hasher.Hash(input.PIN, security.ProfileCardPIN)
		if err != nil {
			return operation.Result[Output]{}, fmt.Errorf("hash pin: %w", err)
		}
		number, err := s.numbers.Next()
		if err != nil {
			return operation.Result[Output]{}, err
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[Output] {
				acc, err := repos.Accounts().GetByID(ctx, input.AccountID)
				if err != nil {
					return operation.Fail[Output]("load account", err)
				}
				if !acc.IsActive() {
					return operation.Fail[Output](fmt.Sprintf("issue card on account %d", acc.ID), entity.ErrAccountNotActive)
				}

				now := s.clock.UtcNow()
				expiry := now.AddDate(validYears, 0, 0)
				c := &entity.Card{
					AccountID:   acc.ID,
					Number:      number,
					ExpiryYear:  expiry.Year(),
					ExpiryMonth: int(expiry.Month()),
					PINHash:     pinHash,
					Type:        input.Type,
					Status:      entity.CardActive,
					CreatedAt:   now,
				}
				id, err := repos.Cards().Insert(ctx, c)
				if err != nil {
					return operation.Fail[Output]("insert card", err)
				}
				c.ID = id
				return operation.Ok(toOutput(c))
			})
	})
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func invalidPIN[T any]() operation.Result[T] {
	return operation.Failed[T](operation.CodeInvalidInput, "pin must be 4 to 6 digits", nil)
}
