package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/civiworks/workboard/internal/core/domain"
)

type fixedSessionSource struct {
	session domain.Session
}

func (f fixedSessionSource) Snapshot() domain.Session { return f.session }

type fixedSetupSignal struct {
	required bool
}

func (f fixedSetupSignal) SetupRequired() bool { return f.required }

func TestSessionHandler_Get_SignedOut(t *testing.T) {
	e := newTestEcho()
	h := NewSessionHandler(fixedSessionSource{domain.Session{Initialized: true}}, fixedSetupSignal{required: true})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"initialized":true`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if !strings.Contains(body, `"setup_required":true`) {
		t.Fatalf("setup signal missing: %s", body)
	}
	if strings.Contains(body, `"navigation"`) {
		t.Fatalf("signed-out session must carry no navigation: %s", body)
	}
}

func TestSessionHandler_Get_SignedInWithRole(t *testing.T) {
	e := newTestEcho()
	session := domain.Session{
		Identity:    &domain.Identity{UID: "u1", Email: "w@example.com", Token: "secret-token"},
		Role:        domain.RoleWorker,
		Initialized: true,
	}
	h := NewSessionHandler(fixedSessionSource{session}, fixedSetupSignal{})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, domain.PathReports) {
		t.Fatalf("worker navigation missing: %s", body)
	}
	if strings.Contains(body, "secret-token") {
		t.Fatalf("token must never serialize: %s", body)
	}
}
