package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// UserRepository defines persistence for user role records. Records are
// keyed by the identity provider's credential id.
type UserRepository interface {
	Get(ctx context.Context, id string) (*domain.UserRecord, error)
	Set(ctx context.Context, record *domain.UserRecord) (*domain.UserRecord, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.UserRecord, error)
	// SuperadminExists reports whether any record with the superadmin role
	// exists. It backs the one-time provisioning gate.
	SuperadminExists(ctx context.Context) (bool, error)
}
