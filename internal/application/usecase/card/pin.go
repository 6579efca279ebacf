package card

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/security"
)

// SetPIN replaces the PIN and clears any failure count or lock.
func (s *Service) SetPIN(ctx context.Context, input PINInput) (operation.Result[int64], error) {
	id := input.CardID
	action := operation.Action{Name: "SetPIN", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		if !validPIN(input.PIN) {
			return invalidPIN[int64](), nil
		}
		pinHash, err := s.hasher.Hash(input.PIN, security.ProfileCardPIN)
		if err != nil {
			return operation.Result[int64]{}, fmt.Errorf("hash pin: %w", err)
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				c, err := repos.Cards().GetByID(ctx, id)
				if err != nil {
					return operation.Fail[int64]("load card", err)
				}
				if c.Status != entity.CardActive {
					return operation.Fail[int64]("set pin", entity.ErrCardNotActive)
				}
				if err := repos.Cards().UpdatePIN(ctx, id, pinHash); err != nil {
					return operation.Fail[int64]("update pin", err)
				}
				return operation.Ok(id)
			})
	})
}

// VerifyPIN checks a PIN attempt. A wrong PIN is an Ok result with
// Verified false so the raised failure count is committed; the third
// consecutive failure locks the card for entity.PINLockDuration.
func (s *Service) VerifyPIN(ctx context.Context, input PINInput) (operation.Result[VerifyOutput], error) {
	id := input.CardID
	action := operation.Action{Name: "VerifyPIN", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[VerifyOutput], error) {
		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[VerifyOutput] {
				c, err := repos.Cards().GetByID(ctx, id)
				if err != nil {
					return operation.Fail[VerifyOutput]("load card", err)
				}
				if c.Status != entity.CardActive {
					return operation.Fail[VerifyOutput]("verify pin", entity.ErrCardNotActive)
				}

				now := s.clock.UtcNow()
				if c.IsLocked(now) {
					return operation.Fail[VerifyOutput](
						fmt.Sprintf("locked until %s", c.PINLockedUntil.Format("15:04:05")), entity.ErrPINLocked)
				}

				if s.hasher.Verify(c.PINHash, input.PIN) {
					if c.PINFailCount > 0 || c.PINLockedUntil != nil {
						if err := repos.Cards().UpdatePINFailCount(ctx, id, 0, nil); err != nil {
							return operation.Fail[VerifyOutput]("reset pin failures", err)
						}
					}
					return operation.Ok(VerifyOutput{CardID: id, Verified: true})
				}

				// an expired lock starts a fresh round of attempts
				if c.PINLockedUntil != nil {
					c.PINFailCount = 0
				}
				count, until := c.RegisterPINFailure(now)
				if err := repos.Cards().UpdatePINFailCount(ctx, id, count, until); err != nil {
					return operation.Fail[VerifyOutput]("record pin failure", err)
				}
				return operation.Ok(VerifyOutput{CardID: id, FailCount: count, LockedUntil: until})
			})
	})
}

func (s *Service) List(ctx context.Context, accountID int64) (operation.Result[[]Output], error) {
	return operation.Execute(ctx, s.orchestrator, "ListCards", false,
		func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[[]Output] {
			cards, err := repos.Cards().ListByAccount(ctx, accountID)
			if err != nil {
				return operation.Fail[[]Output]("list cards", err)
			}
			out := make([]Output, 0, len(cards))
			for i := range cards {
				out = append(out, toOutput(&cards[i]))
			}
			return operation.Ok(out)
		})
}
