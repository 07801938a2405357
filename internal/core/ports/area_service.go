package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// AreaService manages work areas.
type AreaService interface {
	Create(ctx context.Context, name, description string) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Delete(ctx context.Context, id string) error
}
