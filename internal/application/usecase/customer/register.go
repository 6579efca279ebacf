package customer

import (
	"context"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/security"
)

// Register stores the customer and its credentials together; neither row
// survives without the other.
func (s *Service) Register(ctx context.Context, input RegisterInput) (operation.Result[int64], error) {
	action := operation.Action{Name: "RegisterCustomer", TargetType: targetType}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		hash, err := s.hasher.Hash(input.Password, security.ProfileUserPassword)
		if err != nil {
			return operation.Result[int64]{}, fmt.Errorf("hash password: %w", err)
		}

		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				now := s.clock.UtcNow()

				c := input.Profile.toEntity()
				c.CreatedAt = &now
				id, err := repos.Customers().Insert(ctx, c)
				if err != nil {
					return operation.Fail[int64]("insert customer", err)
				}

				loginID := input.LoginID
				if loginID == "" {
					loginID = c.Name
				}
				err = repos.CustomerAuth().Insert(ctx, &entity.CustomerAuth{
					CustomerID:       id,
					LoginID:          loginID,
					PasswordHash:     hash,
					TwoFactorEnabled: input.TwoFactorEnabled,
					CreatedAt:        &now,
				})
				if err != nil {
					return operation.Fail[int64]("insert customer credentials", err)
				}
				return operation.Ok(id)
			})
	})
}
