package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// ReportRepository defines persistence for work reports.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.WorkReport) (*domain.WorkReport, error)
	Get(ctx context.Context, id string) (*domain.WorkReport, error)
	Update(ctx context.Context, report *domain.WorkReport) error
	// Query returns reports matching the filter, newest start time first.
	Query(ctx context.Context, filter domain.ReportFilter) ([]domain.WorkReport, error)
}
