package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/ports"
)

// AreaHandler exposes work area management.
type AreaHandler struct {
	areas ports.AreaService
}

func NewAreaHandler(areas ports.AreaService) *AreaHandler {
	return &AreaHandler{areas: areas}
}

// List returns all areas.
//
// @Summary      List areas
// @Tags         areas
// @Produce      json
// @Success      200  {array}  domain.Area
// @Router       /dashboard/areas [get]
func (h *AreaHandler) List(c echo.Context) error {
	areas, err := h.areas.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, areas)
}

// Create adds a new area.
//
// @Summary      Create an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        body  body      createAreaRequest  true  "Area details"
// @Success      201   {object}  domain.Area
// @Router       /dashboard/areas [post]
func (h *AreaHandler) Create(c echo.Context) error {
	var req createAreaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	area, err := h.areas.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, area)
}

// Delete removes an area. References held by users and reports are kept.
//
// @Summary      Delete an area
// @Tags         areas
// @Param        id  path  string  true  "Area id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/areas/{id} [delete]
func (h *AreaHandler) Delete(c echo.Context) error {
	if err := h.areas.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
