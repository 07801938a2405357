package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
	"github.com/civiworks/workboard/internal/core/service"
)

type stubSetupProvisioner struct {
	provisioned bool
	existsErr   error
	result      *ports.AuthResult
	setupErr    error
}

func (p *stubSetupProvisioner) SuperadminExists(_ context.Context) (bool, error) {
	return p.provisioned, p.existsErr
}

func (p *stubSetupProvisioner) SetupInitialAdmin(_ context.Context, _, _, _ string) (*ports.AuthResult, error) {
	if p.setupErr != nil {
		return nil, p.setupErr
	}
	p.provisioned = true
	return p.result, nil
}

func superadminResult() *ports.AuthResult {
	return &ports.AuthResult{
		Identity: &domain.Identity{UID: "root", Email: "root@example.com", Token: "tok"},
		Record:   &domain.UserRecord{ID: "root", Email: "root@example.com", Role: domain.RoleSuperadmin},
	}
}

func TestSetupHandler_Status_Unprovisioned(t *testing.T) {
	e := newTestEcho()
	h := NewSetupHandler(&stubSetupProvisioner{}, service.NewSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/setup", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"provisioned":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSetupHandler_Status_ProvisionedRedirects(t *testing.T) {
	e := newTestEcho()
	h := NewSetupHandler(&stubSetupProvisioner{provisioned: true}, service.NewSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/setup", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestSetupHandler_Create_SignsInSuperadmin(t *testing.T) {
	e := newTestEcho()
	store := service.NewSessionStore()
	h := NewSetupHandler(&stubSetupProvisioner{result: superadminResult()}, store)

	body := `{"name":"Root","email":"root@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/setup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	snap := store.Snapshot()
	if snap.Role != domain.RoleSuperadmin || !snap.Initialized {
		t.Fatalf("superadmin session not installed: %+v", snap)
	}
}

func TestSetupHandler_Create_WeakPassword(t *testing.T) {
	e := newTestEcho()
	h := NewSetupHandler(&stubSetupProvisioner{}, service.NewSessionStore())

	body := `{"name":"Root","email":"root@example.com","password":"123"}`
	req := httptest.NewRequest(http.MethodPost, "/setup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for short password, got %v", err)
	}
}

func TestSetupHandler_Create_AlreadyProvisioned(t *testing.T) {
	e := newTestEcho()
	store := service.NewSessionStore()
	h := NewSetupHandler(&stubSetupProvisioner{setupErr: domain.ErrAlreadyProvisioned}, store)

	body := `{"name":"Root","email":"root@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/setup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != domain.ErrAlreadyProvisioned {
		t.Fatalf("expected ErrAlreadyProvisioned to propagate, got %v", err)
	}
	if store.Snapshot().SignedIn() {
		t.Fatalf("refused setup must not install a session")
	}
}
