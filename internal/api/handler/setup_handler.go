package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/core/service"
)

// SetupHandler drives the one-time initial-admin provisioning flow.
type SetupHandler struct {
	provisioner ports.Provisioner
	store       *service.SessionStore
}

func NewSetupHandler(provisioner ports.Provisioner, store *service.SessionStore) *SetupHandler {
	return &SetupHandler{provisioner: provisioner, store: store}
}

// Status reports whether the system is provisioned. A provisioned system
// answers with a redirect to login: the setup route is spent.
//
// @Summary      Setup status
// @Tags         setup
// @Produce      json
// @Success      200  {object}  setupStatusResponse
// @Router       /setup [get]
func (h *SetupHandler) Status(c echo.Context) error {
	provisioned, err := h.provisioner.SuperadminExists(c.Request().Context())
	if err != nil {
		return err
	}
	if provisioned {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.JSON(http.StatusOK, setupStatusResponse{Provisioned: false})
}

// Create provisions the superadmin account and signs it in.
//
// @Summary      Create the initial superadmin
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      setupRequest  true  "Initial admin details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  errorResponse
// @Router       /setup [post]
func (h *SetupHandler) Create(c echo.Context) error {
	var req setupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.provisioner.SetupInitialAdmin(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.store.SetIdentity(result.Identity)
	h.store.SetRole(result.Record.Role)
	h.store.MarkInitialized()

	return c.JSON(http.StatusCreated, authResponse{Token: result.Identity.Token, User: result.Record})
}
