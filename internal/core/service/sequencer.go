package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/metrics"
)

// ErrAlreadyRunning is returned when Run is called a second time. The
// sequencer's subscription is terminal for the process lifetime.
var ErrAlreadyRunning = errors.New("sequencer already running")

// Sequencer wires the session store to the live world. It runs once at
// process start, subscribes to the provider's identity-change stream, and
// resolves each event into a session snapshot.
//
// Events are dequeued in order and each is assigned a sequence token before
// its role lookup starts, so a slow lookup for an earlier event can never
// overwrite the result of a later one. Any error during resolution fails
// closed: absent identity, initialized true.
type Sequencer struct {
	provider    ports.IdentityProvider
	users       ports.UserRepository
	provisioner ports.Provisioner
	store       *SessionStore
	log         zerolog.Logger

	running       atomic.Bool
	setupRequired atomic.Bool
	inflight      sync.WaitGroup
}

func NewSequencer(provider ports.IdentityProvider, users ports.UserRepository, provisioner ports.Provisioner, store *SessionStore, log zerolog.Logger) *Sequencer {
	return &Sequencer{
		provider:    provider,
		users:       users,
		provisioner: provisioner,
		store:       store,
		log:         log,
	}
}

// Run subscribes to the identity-change stream and starts the event loop.
// It returns immediately; resolution happens in the background until ctx is
// cancelled. A second call returns ErrAlreadyRunning.
func (q *Sequencer) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	events := q.provider.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				// The token is taken before the lookup starts; a later
				// event always gets a larger one.
				seq := q.store.Begin()
				q.inflight.Add(1)
				go q.handle(ctx, seq, ev)
			}
		}
	}()
	return nil
}

// SetupRequired reports whether the last signed-out resolution found the
// system unprovisioned. It is the side-effect signal that distinguishes
// "must navigate to setup" from ordinary logged-out state.
func (q *Sequencer) SetupRequired() bool {
	return q.setupRequired.Load()
}

// Wait blocks until all in-flight resolutions have landed. Used on shutdown
// and by tests.
func (q *Sequencer) Wait() {
	q.inflight.Wait()
}

func (q *Sequencer) handle(ctx context.Context, seq uint64, ev ports.IdentityEvent) {
	defer q.inflight.Done()

	if ev.Identity == nil {
		metrics.IdentityEventsTotal.WithLabelValues("signed_out").Inc()
		q.handleSignedOut(ctx, seq)
		return
	}

	metrics.IdentityEventsTotal.WithLabelValues("signed_in").Inc()
	// A present identity implies credentials exist; the setup signal is
	// only meaningful while signed out.
	q.setupRequired.Store(false)
	record, err := q.users.Get(ctx, ev.Identity.UID)
	switch {
	case err == nil:
		if !q.store.Apply(seq, ev.Identity, record.Role) {
			metrics.StaleResolutionsTotal.Inc()
		}
	case errors.Is(err, domain.ErrUserNotFound):
		// Race between account-creation steps, or a manually deleted
		// record: signed in, no role. The guard restricts this session
		// the same as any role mismatch.
		q.log.Warn().Str("uid", ev.Identity.UID).Msg("role record missing for identity")
		if !q.store.Apply(seq, ev.Identity, "") {
			metrics.StaleResolutionsTotal.Inc()
		}
	default:
		q.log.Error().Err(err).Str("uid", ev.Identity.UID).Msg("role lookup failed; failing closed")
		if !q.store.Apply(seq, nil, "") {
			metrics.StaleResolutionsTotal.Inc()
		}
	}
}

func (q *Sequencer) handleSignedOut(ctx context.Context, seq uint64) {
	provisioned, err := q.provisioner.SuperadminExists(ctx)
	if err != nil {
		q.log.Error().Err(err).Msg("provisioning check failed; failing closed")
		q.store.Apply(seq, nil, "")
		return
	}
	q.setupRequired.Store(!provisioned)
	if !provisioned {
		q.log.Info().Msg("no superadmin account exists; initial setup required")
	}
	if !q.store.Apply(seq, nil, "") {
		metrics.StaleResolutionsTotal.Inc()
	}
}
