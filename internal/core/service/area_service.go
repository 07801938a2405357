package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

// AreaAdminService manages work areas. Deletion does not cascade: users and
// reports keep the area name as a historical tag.
type AreaAdminService struct {
	areas ports.AreaRepository
	log   zerolog.Logger
}

func NewAreaService(areas ports.AreaRepository, log zerolog.Logger) *AreaAdminService {
	return &AreaAdminService{areas: areas, log: log}
}

func (s *AreaAdminService) Create(ctx context.Context, name, description string) (*domain.Area, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: area name is required", domain.ErrPersistenceFailure)
	}
	area := &domain.Area{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.areas.Create(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	s.log.Info().Str("area_id", created.ID).Str("name", name).Msg("area created")
	return created, nil
}

func (s *AreaAdminService) List(ctx context.Context) ([]domain.Area, error) {
	return s.areas.List(ctx)
}

func (s *AreaAdminService) Delete(ctx context.Context, id string) error {
	if err := s.areas.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("area_id", id).Msg("area deleted")
	return nil
}
