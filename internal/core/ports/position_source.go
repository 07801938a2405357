package ports

import (
	"context"
	"time"

	"github.com/civiworks/workboard/internal/core/domain"
)

// Position is a single geolocation fix.
type Position struct {
	Coords domain.Coordinates
	At     time.Time
}

// PositionSource abstracts the device geolocation API: a one-shot fix plus a
// continuous watch stream. Watch delivers fixes until ctx is cancelled.
type PositionSource interface {
	Current(ctx context.Context) (Position, error)
	Watch(ctx context.Context) (<-chan Position, error)
}
