package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// AccountFields carries the role record fields for a new account.
type AccountFields struct {
	Name string
	Role domain.Role
	Area string
}

// AuthResult pairs a provider identity with its resolved role record.
type AuthResult struct {
	Identity *domain.Identity
	Record   *domain.UserRecord
}

// AuthGateway resolves provider credentials into application-level role
// records.
type AuthGateway interface {
	// SignIn fails with domain.ErrInvalidCredentials when the provider
	// rejects the pair, and with domain.ErrRoleRecordMissing when the
	// identity resolves but no user record exists.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// CreateAccountWithRole creates a provider credential, then persists the
	// role record keyed by the new credential's id. A failed second step
	// leaves an identity without a record; the next sign-in surfaces it as
	// domain.ErrRoleRecordMissing.
	CreateAccountWithRole(ctx context.Context, email, password string, fields AccountFields) (*AuthResult, error)
	// SignOut clears the external session. A remote failure never blocks
	// local session clearing.
	SignOut(ctx context.Context) error
}
