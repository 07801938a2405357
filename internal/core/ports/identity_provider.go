package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// IdentityEvent is one identity-change notification from the provider.
// A nil Identity means "signed out".
type IdentityEvent struct {
	Identity *domain.Identity
}

// IdentityProvider is the contract over the external identity service.
// Subscribe returns the identity-change stream: one event per sign-in,
// account creation, or sign-out, delivered in the order they happened.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	CreateCredential(ctx context.Context, email, password string) (*domain.Identity, error)
	SignOut(ctx context.Context, identity *domain.Identity) error
	Subscribe() <-chan IdentityEvent
}
