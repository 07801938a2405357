package ports

import "context"

// Provisioner answers the one-time "is the system provisioned" question and
// performs the initial superadmin setup.
type Provisioner interface {
	// SuperadminExists is idempotent: with no intervening writes, repeated
	// calls return the same answer.
	SuperadminExists(ctx context.Context) (bool, error)
	SetupInitialAdmin(ctx context.Context, name, email, password string) (*AuthResult, error)
}
