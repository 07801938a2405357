package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Wrong-password and
	// missing-role-record stay distinguishable on purpose: only the first
	// invites a retry with different credentials.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrRoleRecordMissing):
		return http.StatusForbidden, "account has no role assigned; contact an administrator"
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict, "email already in use"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrAlreadyProvisioned):
		return http.StatusConflict, "system is already set up"
	case errors.Is(err, domain.ErrProvisioningCheck):
		return http.StatusServiceUnavailable, "failed to check system status"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrAreaNotFound):
		return http.StatusNotFound, "area not found"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "work report not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrLocationPermission),
		errors.Is(err, domain.ErrLocationNoPosition),
		errors.Is(err, domain.ErrLocationTimeout),
		errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrPersistenceFailure):
		log.Error().Err(err).Str("path", c.Path()).Msg("persistence failure")
		return http.StatusInternalServerError, "the operation could not be saved; please try again"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
