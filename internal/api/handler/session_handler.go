package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/domain"
)

// SessionSource yields a consistent snapshot of the current session.
type SessionSource interface {
	Snapshot() domain.Session
}

// SetupSignal reports whether the system still awaits initial provisioning.
type SetupSignal interface {
	SetupRequired() bool
}

// SessionHandler exposes the session snapshot the dashboard shell renders
// from: identity, role, initialization state, and the navigation entries the
// role may reach.
type SessionHandler struct {
	sessions SessionSource
	setup    SetupSignal
}

func NewSessionHandler(sessions SessionSource, setup SetupSignal) *SessionHandler {
	return &SessionHandler{sessions: sessions, setup: setup}
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	snap := h.sessions.Snapshot()
	resp := sessionResponse{
		Identity:      snap.Identity,
		Role:          snap.Role,
		Initialized:   snap.Initialized,
		SetupRequired: h.setup != nil && h.setup.SetupRequired(),
	}
	if snap.HasRole() {
		resp.Navigation = domain.NavigationFor(snap.Role)
	}
	return c.JSON(http.StatusOK, resp)
}
