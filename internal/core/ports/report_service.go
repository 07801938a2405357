package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// StartReportInput carries a worker's "start work" submission.
type StartReportInput struct {
	UserID      string
	Description string
	Area        string
	Location    domain.Coordinates
	// Image is the raw start photo; Filename and ContentType describe it.
	Image       []byte
	Filename    string
	ContentType string
}

// ReportService manages the work report lifecycle.
type ReportService interface {
	Start(ctx context.Context, input StartReportInput) (*domain.WorkReport, error)
	Complete(ctx context.Context, id string, endImage []byte, filename, contentType string) (*domain.WorkReport, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WorkReport, error)
	ListFiltered(ctx context.Context, filter domain.ReportFilter) ([]domain.WorkReport, error)
}
