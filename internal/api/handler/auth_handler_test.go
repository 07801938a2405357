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

type stubGateway struct {
	signInResult *ports.AuthResult
	signInErr    error
	createResult *ports.AuthResult
	createErr    error
	signOuts     int
}

func (g *stubGateway) SignIn(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return g.signInResult, g.signInErr
}

func (g *stubGateway) CreateAccountWithRole(_ context.Context, _, _ string, _ ports.AccountFields) (*ports.AuthResult, error) {
	return g.createResult, g.createErr
}

func (g *stubGateway) SignOut(_ context.Context) error {
	g.signOuts++
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func adminResult() *ports.AuthResult {
	return &ports.AuthResult{
		Identity: &domain.Identity{UID: "u1", Email: "a@example.com", Token: "tok"},
		Record:   &domain.UserRecord{ID: "u1", Email: "a@example.com", Role: domain.RoleAdmin},
	}
}

func TestAuthHandler_Login_InstallsSession(t *testing.T) {
	e := newTestEcho()
	store := service.NewSessionStore()
	h := NewAuthHandler(&stubGateway{signInResult: adminResult()}, store)

	body := `{"email":"a@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snap := store.Snapshot()
	if !snap.SignedIn() || snap.Role != domain.RoleAdmin {
		t.Fatalf("session not installed: %+v", snap)
	}
	if !snap.Initialized {
		t.Fatalf("login must mark the session initialized")
	}
	if strings.Contains(rec.Body.String(), `"tok"`) == false {
		t.Fatalf("response missing token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubGateway{}, service.NewSessionStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newTestEcho()
	store := service.NewSessionStore()
	h := NewAuthHandler(&stubGateway{signInErr: domain.ErrInvalidCredentials}, store)

	body := `{"email":"a@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
	if store.Snapshot().SignedIn() {
		t.Fatalf("failed login must not install a session")
	}
}

func TestAuthHandler_Logout_AlwaysClears(t *testing.T) {
	e := newTestEcho()
	gateway := &stubGateway{}
	h := NewAuthHandler(gateway, service.NewSessionStore())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gateway.signOuts != 1 {
		t.Fatalf("expected one gateway sign-out, got %d", gateway.signOuts)
	}
}
