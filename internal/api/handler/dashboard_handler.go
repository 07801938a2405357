package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	apimw "github.com/civiworks/workboard/internal/api/middleware"
)

// DashboardHandler dispatches the dashboard view by role and assembles the
// president's overview numbers.
type DashboardHandler struct {
	users   ports.UserService
	reports ports.ReportService
}

func NewDashboardHandler(users ports.UserService, reports ports.ReportService) *DashboardHandler {
	return &DashboardHandler{users: users, reports: reports}
}

// Get renders the role-dispatched dashboard payload.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	snap := apimw.Session(c)
	if !snap.HasRole() {
		// Signed in but no role record resolved; the dashboard has
		// nothing to dispatch to.
		return c.Redirect(http.StatusSeeOther, domain.PathLogin)
	}

	resp := dashboardResponse{
		Navigation: domain.NavigationFor(snap.Role),
	}

	switch snap.Role {
	case domain.RoleSuperadmin, domain.RoleAdmin:
		resp.View = "admin"
	case domain.RolePresident:
		resp.View = "president"
		stats, err := h.presidentStats(c)
		if err != nil {
			return err
		}
		resp.Stats = stats
	default:
		resp.View = "worker"
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) presidentStats(c echo.Context) (*dashboardStats, error) {
	ctx := c.Request().Context()

	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	workers := 0
	for _, u := range users {
		if u.Role == domain.RoleWorker {
			workers++
		}
	}

	active, err := h.reports.ListFiltered(ctx, domain.ReportFilter{Status: domain.StatusInProgress})
	if err != nil {
		return nil, err
	}

	completed, err := h.reports.ListFiltered(ctx, domain.ReportFilter{Status: domain.StatusCompleted})
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	completedToday := 0
	for _, r := range completed {
		if r.EndTime != nil && !r.EndTime.Before(today) {
			completedToday++
		}
	}

	return &dashboardStats{
		TotalWorkers:   workers,
		ActiveWorkers:  len(active),
		CompletedToday: completedToday,
	}, nil
}
