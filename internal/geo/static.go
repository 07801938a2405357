package geo

import (
	"context"
	"time"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

const staticWatchInterval = 30 * time.Second

// StaticSource is a PositionSource pinned to fixed coordinates, for kiosk
// deployments where the terminal does not move. The watch stream re-emits
// the fix periodically so consumers observe a live subscription.
type StaticSource struct {
	coords domain.Coordinates
}

func NewStaticSource(lat, lng float64) *StaticSource {
	return &StaticSource{coords: domain.Coordinates{Lat: lat, Lng: lng}}
}

func (s *StaticSource) Current(_ context.Context) (ports.Position, error) {
	if s.coords.Zero() {
		return ports.Position{}, domain.ErrLocationNoPosition
	}
	return ports.Position{Coords: s.coords, At: time.Now().UTC()}, nil
}

func (s *StaticSource) Watch(ctx context.Context) (<-chan ports.Position, error) {
	if s.coords.Zero() {
		return nil, domain.ErrLocationNoPosition
	}
	out := make(chan ports.Position, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(staticWatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- ports.Position{Coords: s.coords, At: time.Now().UTC()}:
				default:
				}
			}
		}
	}()
	return out, nil
}
