package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

// UserAdminService manages user accounts on behalf of administrators.
type UserAdminService struct {
	users   ports.UserRepository
	gateway ports.AuthGateway
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, gateway ports.AuthGateway, log zerolog.Logger) *UserAdminService {
	return &UserAdminService{users: users, gateway: gateway, log: log}
}

// Create provisions a credential and role record for a new user. The
// superadmin role is never assignable here; it exists only through the
// one-time setup flow.
func (s *UserAdminService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.UserRecord, error) {
	if input.Role == domain.RoleSuperadmin || !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: role %q is not assignable", domain.ErrForbidden, input.Role)
	}

	result, err := s.gateway.CreateAccountWithRole(ctx, input.Email, input.Password, ports.AccountFields{
		Name: input.Name,
		Role: input.Role,
		Area: input.Area,
	})
	if err != nil {
		return nil, err
	}
	return result.Record, nil
}

// List returns all user records in creation order.
func (s *UserAdminService) List(ctx context.Context) ([]domain.UserRecord, error) {
	return s.users.List(ctx)
}

// Delete removes a user's role record. The provider credential is left
// behind; a later sign-in with it resolves to the role-record-missing state.
func (s *UserAdminService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("uid", id).Msg("user record deleted")
	return nil
}
