package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/DioGolang/GoBank/internal/application/port/outbound"
	"github.com/DioGolang/GoBank/internal/application/usecase/operation"
	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/DioGolang/GoBank/pkg/security"
)

// Modify replaces the profile and touches the credentials only when one of
// login id, two-factor flag or password actually changed. Credentials are
// created when the customer has none.
func (s *Service) Modify(ctx context.Context, input ModifyInput) (operation.Result[int64], error) {
	id := input.CustomerID
	action := operation.Action{Name: "ModifyCustomer", TargetType: targetType, TargetID: &id}

	return operation.Guarded(ctx, s.guard, action, func(ctx context.Context) (operation.Result[int64], error) {
		return operation.Execute(ctx, s.orchestrator, action.Name, true,
			func(ctx context.Context, repos outbound.RepositoryProvider) operation.Result[int64] {
				now := s.clock.UtcNow()

				c := input.Profile.toEntity()
				c.ID = id
				c.UpdatedAt = &now
				if err := repos.Customers().Update(ctx, c); err != nil {
					return operation.Fail[int64]("update customer", err)
				}

				loginID := input.LoginID
				if loginID == "" {
					loginID = c.Name
				}

				current, err := repos.CustomerAuth().GetByCustomerID(ctx, id)
				if errors.Is(err, outbound.ErrNotFound) {
					return s.createCredentials(ctx, repos, id, loginID, input)
				}
				if err != nil {
					return operation.Fail[int64]("load customer credentials", err)
				}

				loginChanged := loginID != current.LoginID
				tfaChanged := input.TwoFactorEnabled != current.TwoFactorEnabled
				pwdChanged := input.Password != "" && !s.hasher.Verify(current.PasswordHash, input.Password)
				if !loginChanged && !tfaChanged && !pwdChanged {
					return operation.Ok(id)
				}

				next := *current
				next.UpdatedAt = &now
				if loginChanged {
					next.LoginID = loginID
				}
				if tfaChanged {
					next.TwoFactorEnabled = input.TwoFactorEnabled
				}
				if pwdChanged {
					hash, err := s.hasher.Hash(input.Password, security.ProfileUserPassword)
					if err != nil {
						return operation.Fail[int64]("hash password", err)
					}
					next.PasswordHash = hash
				}
				if err := repos.CustomerAuth().Update(ctx, &next); err != nil {
					return operation.Fail[int64]("update customer credentials", err)
				}
				return operation.Ok(id)
			})
	})
}

func (s *Service) createCredentials(ctx context.Context, repos outbound.RepositoryProvider, id int64, loginID string, input ModifyInput) operation.Result[int64] {
	if input.Password == "" {
		return operation.Failed[int64](operation.CodeInvalidInput, "password is required to create credentials", nil)
	}
	hash, err := s.hasher.Hash(input.Password, security.ProfileUserPassword)
	if err != nil {
		return operation.Fail[int64]("hash password", err)
	}

	now := s.clock.UtcNow()
	err = repos.CustomerAuth().Insert(ctx, &entity.CustomerAuth{
		CustomerID:       id,
		LoginID:          loginID,
		PasswordHash:     hash,
		TwoFactorEnabled: input.TwoFactorEnabled,
		CreatedAt:        &now,
	})
	if err != nil {
		return operation.Fail[int64](fmt.Sprintf("insert credentials for customer %d", id), err)
	}
	return operation.Ok(id)
}
