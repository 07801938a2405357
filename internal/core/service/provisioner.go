package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/metrics"
)

// ProvisionCache remembers a positive "superadmin exists" answer so the gate
// does not hit the document store on every signed-out event. Only the
// positive answer is ever cached: the superadmin role is immutable, so the
// answer can never flip back to false.
type ProvisionCache interface {
	Provisioned(ctx context.Context) (bool, error)
	MarkProvisioned(ctx context.Context) error
}

// ProvisionService answers the one-time provisioning question and performs
// the initial superadmin setup.
type ProvisionService struct {
	users   ports.UserRepository
	gateway ports.AuthGateway
	cache   ProvisionCache
	log     zerolog.Logger
}

// NewProvisionService builds the service. cache may be nil; the gate then
// always queries the document store.
func NewProvisionService(users ports.UserRepository, gateway ports.AuthGateway, cache ProvisionCache, log zerolog.Logger) *ProvisionService {
	return &ProvisionService{users: users, gateway: gateway, cache: cache, log: log}
}

// SuperadminExists reports whether the system has been provisioned. The
// check is idempotent: with no intervening writes, repeated calls return the
// same answer. Cache failures degrade to a store query, never to an error.
func (p *ProvisionService) SuperadminExists(ctx context.Context) (bool, error) {
	if p.cache != nil {
		cached, err := p.cache.Provisioned(ctx)
		if err != nil {
			p.log.Warn().Err(err).Msg("provision cache read failed; falling back to store")
		} else if cached {
			metrics.ProvisioningChecksTotal.WithLabelValues("cache").Inc()
			return true, nil
		}
	}

	exists, err := p.users.SuperadminExists(ctx)
	if err != nil {
		metrics.ProvisioningChecksTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("%w: %v", domain.ErrProvisioningCheck, err)
	}
	metrics.ProvisioningChecksTotal.WithLabelValues("store").Inc()

	if exists && p.cache != nil {
		if err := p.cache.MarkProvisioned(ctx); err != nil {
			p.log.Warn().Err(err).Msg("provision cache write failed")
		}
	}
	return exists, nil
}

// SetupInitialAdmin creates the one-time superadmin account. It refuses when
// the system is already provisioned.
func (p *ProvisionService) SetupInitialAdmin(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	exists, err := p.SuperadminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyProvisioned
	}

	result, err := p.gateway.CreateAccountWithRole(ctx, email, password, ports.AccountFields{
		Name: name,
		Role: domain.RoleSuperadmin,
	})
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.MarkProvisioned(ctx); err != nil {
			p.log.Warn().Err(err).Msg("provision cache write failed")
		}
	}
	p.log.Info().Str("uid", result.Identity.UID).Msg("initial superadmin created")
	return result, nil
}
