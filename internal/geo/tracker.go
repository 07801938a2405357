// Package geo acquires the device position feeding work-report submissions:
// a one-time fix racing a continuous watch subscription, last write wins.
package geo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

const defaultFixTimeout = 30 * time.Second

// Tracker maintains the freshest position fix from a PositionSource. Start
// kicks off a single-shot fetch and a watch subscription concurrently; both
// write into the same cell and the most recent arrival wins. Stop releases
// the watch on every exit path.
type Tracker struct {
	source  source
	timeout time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	fix     *ports.Position
	fixErr  error
	started bool

	cancel context.CancelFunc
	done   chan struct{}
}

type source = ports.PositionSource

// NewTracker builds a Tracker over the given source. fixTimeout bounds the
// one-shot fetch; zero means the 30s default.
func NewTracker(src ports.PositionSource, fixTimeout time.Duration, log zerolog.Logger) *Tracker {
	if fixTimeout <= 0 {
		fixTimeout = defaultFixTimeout
	}
	return &Tracker{source: src, timeout: fixTimeout, log: log}
}

// Start begins acquisition. It returns immediately; fixes land in the
// background. Calling Start twice is a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	wctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.mu.Unlock()

	go t.fetchOnce(wctx)
	go t.watch(wctx)
}

// Stop releases the watch subscription and waits for it to wind down.
// Safe to call more than once and before Start.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Last returns the freshest coordinates, or a cause-specific location error
// when no fix has arrived yet.
func (t *Tracker) Last() (domain.Coordinates, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fix != nil {
		return t.fix.Coords, nil
	}
	if t.fixErr != nil {
		return domain.Coordinates{}, t.fixErr
	}
	return domain.Coordinates{}, domain.ErrLocationUnavailable
}

func (t *Tracker) fetchOnce(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	pos, err := t.source.Current(fctx)
	if err != nil {
		t.recordError(err)
		return
	}
	t.record(pos)
}

func (t *Tracker) watch(ctx context.Context) {
	defer close(t.done)

	fixes, err := t.source.Watch(ctx)
	if err != nil {
		t.recordError(err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case pos, ok := <-fixes:
			if !ok {
				return
			}
			t.record(pos)
		}
	}
}

func (t *Tracker) record(pos ports.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fix = &pos
	t.fixErr = nil
}

// recordError keeps the most recent failure cause, but never shadows a fix
// that already arrived.
func (t *Tracker) recordError(err error) {
	mapped := mapCause(err)
	t.log.Warn().Err(err).Msg("position acquisition failed")
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fix != nil {
		return
	}
	t.fixErr = mapped
}

// mapCause normalizes source failures into the location error taxonomy so
// each cause reaches the operator with a distinct message.
func mapCause(err error) error {
	switch {
	case errors.Is(err, domain.ErrLocationPermission),
		errors.Is(err, domain.ErrLocationNoPosition),
		errors.Is(err, domain.ErrLocationTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrLocationTimeout
	default:
		return domain.ErrLocationUnavailable
	}
}
