package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apimw "github.com/civiworks/workboard/internal/api/middleware"
	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

// ReportHandler exposes the work report lifecycle and the map view.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Start submits a geotagged "start work" report. The body is multipart:
// description, optional area, optional lat/lng (the kiosk position source is
// the fallback), and the start photo.
//
// @Summary      Start work
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.WorkReport
// @Failure      422  {object}  errorResponse
// @Router       /dashboard/reports [post]
func (h *ReportHandler) Start(c echo.Context) error {
	snap := apimw.Session(c)

	description := strings.TrimSpace(c.FormValue("description"))
	if description == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "description is required")
	}

	location, err := parseLocation(c.FormValue("lat"), c.FormValue("lng"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "lat and lng must be valid coordinates")
	}

	data, filename, contentType, err := readImage(c, "image")
	if err != nil {
		return err
	}

	report, err := h.reports.Start(c.Request().Context(), ports.StartReportInput{
		UserID:      snap.Identity.UID,
		Description: description,
		Area:        c.FormValue("area"),
		Location:    location,
		Image:       data,
		Filename:    filename,
		ContentType: contentType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}

// Complete finishes an in-progress report, optionally with an end photo.
//
// @Summary      Complete work
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  string  true  "Report id"
// @Success      200  {object}  domain.WorkReport
// @Failure      422  {object}  errorResponse
// @Router       /dashboard/reports/{id}/complete [post]
func (h *ReportHandler) Complete(c echo.Context) error {
	var data []byte
	var filename, contentType string
	if _, err := c.FormFile("image"); err == nil {
		data, filename, contentType, err = readImage(c, "image")
		if err != nil {
			return err
		}
	}

	report, err := h.reports.Complete(c.Request().Context(), c.Param("id"), data, filename, contentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ListOwn returns the signed-in worker's reports, newest first.
//
// @Summary      Own reports
// @Tags         reports
// @Produce      json
// @Success      200  {object}  reportResponse
// @Router       /dashboard/reports [get]
func (h *ReportHandler) ListOwn(c echo.Context) error {
	snap := apimw.Session(c)
	reports, err := h.reports.ListByUser(c.Request().Context(), snap.Identity.UID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Reports: reports})
}

// Map returns reports for the map view, filtered by status, area, and date
// range.
//
// @Summary      Map view
// @Tags         reports
// @Produce      json
// @Success      200  {object}  reportResponse
// @Router       /dashboard/map [get]
func (h *ReportHandler) Map(c echo.Context) error {
	var q reportFilterQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	from, err := parseFilterDate(q.From, false)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "from must be a valid date")
	}
	to, err := parseFilterDate(q.To, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "to must be a valid date")
	}

	reports, err := h.reports.ListFiltered(c.Request().Context(), domain.ReportFilter{
		Status: domain.ReportStatus(q.Status),
		Area:   q.Area,
		From:   from,
		To:     to,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Reports: reports})
}

func parseLocation(lat, lng string) (domain.Coordinates, error) {
	if lat == "" && lng == "" {
		return domain.Coordinates{}, nil
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{Lat: la, Lng: ln}, nil
}

func readImage(c echo.Context, field string) ([]byte, string, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", "", echo.NewHTTPError(http.StatusUnprocessableEntity, field+" file is required")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", "", echo.NewHTTPError(http.StatusUnprocessableEntity, "please upload an image file")
	}
	data, err := readAll(fh)
	if err != nil {
		return nil, "", "", echo.NewHTTPError(http.StatusBadRequest, "failed to read upload")
	}
	return data, fh.Filename, contentType, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
