package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/service"
	"github.com/civiworks/workboard/internal/metrics"
)

// SessionSource yields a consistent snapshot of the current session.
type SessionSource interface {
	Snapshot() domain.Session
}

// SetupSignal reports whether the system still awaits initial provisioning.
type SetupSignal interface {
	SetupRequired() bool
}

const sessionKey = "session"

// Guard gates navigation routes on the session store and the declarative
// route table. Decisions map onto HTTP as follows: Allow runs the handler
// with the session snapshot injected into the request context; Pending
// answers 503 so the client retries once initialization lands; the redirect
// decisions answer 303 See Other.
func Guard(sessions SessionSource, setup SetupSignal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			decision := service.DecideRoute(snap, c.Request().URL.Path)
			if decision == service.DecisionRedirectLogin && setup != nil && setup.SetupRequired() {
				// While no superadmin exists, every gated route yields
				// to the setup flow instead of login.
				decision = service.DecisionRedirectSetup
			}
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case service.DecisionAllow:
				c.Set(sessionKey, snap)
				return next(c)
			case service.DecisionPending:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "initializing"})
			case service.DecisionRedirectLogin:
				return c.Redirect(http.StatusSeeOther, domain.PathLogin)
			case service.DecisionRedirectSetup:
				return c.Redirect(http.StatusSeeOther, domain.PathSetup)
			default:
				return c.Redirect(http.StatusSeeOther, domain.PathDashboard)
			}
		}
	}
}

// Session extracts the snapshot injected by the Guard middleware.
func Session(c echo.Context) domain.Session {
	snap, _ := c.Get(sessionKey).(domain.Session)
	return snap
}
