package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// AreaRepository defines persistence for work areas.
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Delete(ctx context.Context, id string) error
}
