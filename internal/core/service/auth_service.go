package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

// AuthService is the gateway between the external identity provider and the
// application's role records.
type AuthService struct {
	provider ports.IdentityProvider
	users    ports.UserRepository
	store    *SessionStore
	log      zerolog.Logger
}

func NewAuthService(provider ports.IdentityProvider, users ports.UserRepository, store *SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{provider: provider, users: users, store: store, log: log}
}

// SignIn authenticates against the provider and resolves the identity's role
// record. Bad credentials surface as domain.ErrInvalidCredentials; an
// accepted credential with no role record surfaces as
// domain.ErrRoleRecordMissing — the first invites a retry with corrected
// input, the second does not.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	record, err := s.users.Get(ctx, identity.UID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRoleRecordMissing
		}
		return nil, fmt.Errorf("resolve role record: %w", err)
	}

	s.log.Info().Str("uid", identity.UID).Str("role", string(record.Role)).Msg("signed in")
	return &ports.AuthResult{Identity: identity, Record: record}, nil
}

// CreateAccountWithRole creates a provider credential, then persists the
// role record keyed by the credential's id. When the second write fails the
// identity is left without a record; that partial state is not retried here
// and resolves to ErrRoleRecordMissing on the next sign-in.
func (s *AuthService) CreateAccountWithRole(ctx context.Context, email, password string, fields ports.AccountFields) (*ports.AuthResult, error) {
	if !domain.ValidRole(fields.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	identity, err := s.provider.CreateCredential(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.UserRecord{
		ID:        identity.UID,
		Email:     email,
		Name:      fields.Name,
		Role:      fields.Role,
		Area:      fields.Area,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := s.users.Set(ctx, record)
	if err != nil {
		s.log.Error().Err(err).Str("uid", identity.UID).Msg("role record write failed after credential creation")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	s.log.Info().Str("uid", identity.UID).Str("role", string(fields.Role)).Msg("account created")
	return &ports.AuthResult{Identity: identity, Record: stored}, nil
}

// SignOut clears the external session and then the local one. The remote
// call is best-effort: its failure is logged and never blocks the local
// clear, so the operator is never stuck in an authenticated view.
func (s *AuthService) SignOut(ctx context.Context) error {
	identity := s.store.Snapshot().Identity
	if err := s.provider.SignOut(ctx, identity); err != nil {
		s.log.Warn().Err(err).Msg("remote sign-out failed; clearing local session anyway")
	}
	s.store.Clear()
	return nil
}
