package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/core/service"
	"github.com/civiworks/workboard/internal/metrics"
)

type AuthHandler struct {
	gateway ports.AuthGateway
	store   *service.SessionStore
}

func NewAuthHandler(gateway ports.AuthGateway, store *service.SessionStore) *AuthHandler {
	return &AuthHandler{gateway: gateway, store: store}
}

// Login authenticates the operator and installs the session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.gateway.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("ok").Inc()

	// Install the resolved session immediately; the identity-change event
	// re-applies the same values asynchronously.
	h.store.SetIdentity(result.Identity)
	h.store.SetRole(result.Record.Role)
	h.store.MarkInitialized()

	return c.JSON(http.StatusOK, authResponse{Token: result.Identity.Token, User: result.Record})
}

// Logout clears the remote and local session. It always succeeds from the
// operator's point of view: a failed remote revocation never traps them in
// an authenticated view.
//
// @Summary      Sign out
// @Tags         auth
// @Success      204  "cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = h.gateway.SignOut(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func signInResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrRoleRecordMissing):
		return "role_record_missing"
	default:
		return "error"
	}
}
