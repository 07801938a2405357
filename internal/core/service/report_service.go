package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/metrics"
)

// PositionFallback supplies the device's last known fix when a submission
// carries no coordinates of its own.
type PositionFallback interface {
	Last() (domain.Coordinates, error)
}

// ReportWorkService manages the work report lifecycle: geotagged start
// submissions with a photo, and their eventual completion.
type ReportWorkService struct {
	reports  ports.ReportRepository
	blobs    ports.BlobStore
	position PositionFallback
	log      zerolog.Logger
}

// NewReportService builds the service. position may be nil; submissions must
// then carry explicit coordinates.
func NewReportService(reports ports.ReportRepository, blobs ports.BlobStore, position PositionFallback, log zerolog.Logger) *ReportWorkService {
	return &ReportWorkService{reports: reports, blobs: blobs, position: position, log: log}
}

// Start uploads the start photo and records a new in-progress report. A
// submission without coordinates falls back to the device tracker; with
// neither, it fails with a location error and nothing is written.
func (s *ReportWorkService) Start(ctx context.Context, input ports.StartReportInput) (*domain.WorkReport, error) {
	if input.UserID == "" || input.Description == "" || len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: user, description and start image are required", domain.ErrPersistenceFailure)
	}

	location := input.Location
	if location.Zero() {
		if s.position == nil {
			return nil, domain.ErrLocationUnavailable
		}
		fix, err := s.position.Last()
		if err != nil {
			return nil, err
		}
		location = fix
	}

	url, err := s.upload(ctx, input.Image, input.Filename, input.ContentType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &domain.WorkReport{
		UserID:      input.UserID,
		Description: input.Description,
		Area:        input.Area,
		StartTime:   now,
		Status:      domain.StatusInProgress,
		StartImage:  url,
		Location:    location,
	}

	created, err := s.reports.Create(ctx, report)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create work report")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	metrics.ReportsTotal.WithLabelValues("started").Inc()
	s.log.Info().Str("report_id", created.ID).Str("user_id", input.UserID).
		Float64("lat", location.Lat).Float64("lng", location.Lng).Msg("work started")
	return created, nil
}

// Complete transitions a report from in-progress to completed, stamping the
// end time and, when provided, the end photo.
func (s *ReportWorkService) Complete(ctx context.Context, id string, endImage []byte, filename, contentType string) (*domain.WorkReport, error) {
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.Status.CanTransitionTo(domain.StatusCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	if len(endImage) > 0 {
		url, err := s.upload(ctx, endImage, filename, contentType)
		if err != nil {
			return nil, err
		}
		report.EndImage = url
	}

	now := time.Now().UTC()
	report.EndTime = &now
	report.Status = domain.StatusCompleted

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	metrics.ReportsTotal.WithLabelValues("completed").Inc()
	s.log.Info().Str("report_id", report.ID).Msg("work completed")
	return report, nil
}

// ListByUser returns a worker's own reports, newest start first.
func (s *ReportWorkService) ListByUser(ctx context.Context, userID string) ([]domain.WorkReport, error) {
	return s.reports.Query(ctx, domain.ReportFilter{UserID: userID})
}

// ListFiltered returns reports for the map view, narrowed by status, area,
// and date range.
func (s *ReportWorkService) ListFiltered(ctx context.Context, filter domain.ReportFilter) ([]domain.WorkReport, error) {
	return s.reports.Query(ctx, filter)
}

func (s *ReportWorkService) upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("work-reports/%d-%s", time.Now().UnixMilli(), filename)
	url, err := s.blobs.Upload(ctx, key, data, contentType)
	if err != nil {
		metrics.BlobUploadsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return "", fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
	metrics.BlobUploadsTotal.WithLabelValues("ok").Inc()
	return url, nil
}
