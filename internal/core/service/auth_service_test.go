package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

type stubCredential struct {
	uid      string
	password string
}

type stubProvider struct {
	credentials map[string]stubCredential
	createErr   error
	signOutErr  error
	signOuts    int
	events      chan ports.IdentityEvent
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		credentials: make(map[string]stubCredential),
		events:      make(chan ports.IdentityEvent, 16),
	}
}

func (p *stubProvider) SignIn(_ context.Context, email, password string) (*domain.Identity, error) {
	cred, ok := p.credentials[email]
	if !ok || cred.password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{UID: cred.uid, Email: email, Token: "tok-" + cred.uid}, nil
}

func (p *stubProvider) CreateCredential(_ context.Context, email, password string) (*domain.Identity, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if _, exists := p.credentials[email]; exists {
		return nil, domain.ErrEmailInUse
	}
	uid := "uid-" + email
	p.credentials[email] = stubCredential{uid: uid, password: password}
	return &domain.Identity{UID: uid, Email: email, Token: "tok-" + uid}, nil
}

func (p *stubProvider) SignOut(_ context.Context, _ *domain.Identity) error {
	p.signOuts++
	return p.signOutErr
}

func (p *stubProvider) Subscribe() <-chan ports.IdentityEvent {
	return p.events
}

type stubUserRepo struct {
	records    map[string]*domain.UserRecord
	getErr     error
	setErr     error
	deleteErr  error
	existsErr  error
	existCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{records: make(map[string]*domain.UserRecord)}
}

func (r *stubUserRepo) Get(_ context.Context, id string) (*domain.UserRecord, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubUserRepo) Set(_ context.Context, record *domain.UserRecord) (*domain.UserRecord, error) {
	if r.setErr != nil {
		return nil, r.setErr
	}
	clone := *record
	r.records[record.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.UserRecord, error) {
	out := make([]domain.UserRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubUserRepo) SuperadminExists(_ context.Context) (bool, error) {
	r.existCalls++
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, rec := range r.records {
		if rec.Role == domain.RoleSuperadmin {
			return true, nil
		}
	}
	return false, nil
}

func TestAuthService_SignIn_Success(t *testing.T) {
	provider := newStubProvider()
	provider.credentials["alice@example.com"] = stubCredential{uid: "u1", password: "s3cret"}
	users := newStubUserRepo()
	users.records["u1"] = &domain.UserRecord{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin}

	svc := NewAuthService(provider, users, NewSessionStore(), zerolog.Nop())
	result, err := svc.SignIn(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if result.Identity.UID != "u1" {
		t.Fatalf("unexpected uid: %s", result.Identity.UID)
	}
	if result.Record.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", result.Record.Role)
	}
}

func TestAuthService_SignIn_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubProvider(), newStubUserRepo(), NewSessionStore(), zerolog.Nop())
	if _, err := svc.SignIn(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.SignIn(context.Background(), "a@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_BadPassword(t *testing.T) {
	provider := newStubProvider()
	provider.credentials["alice@example.com"] = stubCredential{uid: "u1", password: "s3cret"}
	svc := NewAuthService(provider, newStubUserRepo(), NewSessionStore(), zerolog.Nop())

	if _, err := svc.SignIn(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_RoleRecordMissing(t *testing.T) {
	provider := newStubProvider()
	provider.credentials["ghost@example.com"] = stubCredential{uid: "u9", password: "s3cret"}
	svc := NewAuthService(provider, newStubUserRepo(), NewSessionStore(), zerolog.Nop())

	_, err := svc.SignIn(context.Background(), "ghost@example.com", "s3cret")
	if !errors.Is(err, domain.ErrRoleRecordMissing) {
		t.Fatalf("expected ErrRoleRecordMissing, got %v", err)
	}
}

func TestAuthService_CreateAccountWithRole(t *testing.T) {
	provider := newStubProvider()
	users := newStubUserRepo()
	svc := NewAuthService(provider, users, NewSessionStore(), zerolog.Nop())

	result, err := svc.CreateAccountWithRole(context.Background(), "bob@example.com", "s3cret", ports.AccountFields{
		Name: "Bob", Role: domain.RoleWorker, Area: "north",
	})
	if err != nil {
		t.Fatalf("CreateAccountWithRole returned error: %v", err)
	}
	if result.Record.ID != result.Identity.UID {
		t.Fatalf("record must be keyed by the credential id")
	}
	stored, err := users.Get(context.Background(), result.Identity.UID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.Role != domain.RoleWorker || stored.Area != "north" {
		t.Fatalf("unexpected record: %+v", stored)
	}
}

func TestAuthService_CreateAccountWithRole_InvalidRole(t *testing.T) {
	svc := NewAuthService(newStubProvider(), newStubUserRepo(), NewSessionStore(), zerolog.Nop())
	if _, err := svc.CreateAccountWithRole(context.Background(), "x@example.com", "s3cret", ports.AccountFields{Role: "manager"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CreateAccountWithRole_RecordWriteFails(t *testing.T) {
	provider := newStubProvider()
	users := newStubUserRepo()
	users.setErr = errors.New("write refused")
	svc := NewAuthService(provider, users, NewSessionStore(), zerolog.Nop())

	_, err := svc.CreateAccountWithRole(context.Background(), "bob@example.com", "s3cret", ports.AccountFields{Role: domain.RoleWorker})
	if !errors.Is(err, domain.ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}
	// The credential now exists without a record; the next sign-in must
	// surface that as the missing-role state.
	users.setErr = nil
	if _, err := svc.SignIn(context.Background(), "bob@example.com", "s3cret"); !errors.Is(err, domain.ErrRoleRecordMissing) {
		t.Fatalf("expected ErrRoleRecordMissing after partial creation, got %v", err)
	}
}

func TestAuthService_SignOut_ClearsLocalOnRemoteFailure(t *testing.T) {
	provider := newStubProvider()
	provider.signOutErr = errors.New("network down")
	store := NewSessionStore()
	store.SetIdentity(&domain.Identity{UID: "u1"})
	store.SetRole(domain.RoleAdmin)
	store.MarkInitialized()

	svc := NewAuthService(provider, newStubUserRepo(), store, zerolog.Nop())
	if err := svc.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut must not propagate remote failures, got %v", err)
	}
	snap := store.Snapshot()
	if snap.SignedIn() {
		t.Fatalf("local session must be cleared even when remote sign-out fails")
	}
	if !snap.Initialized {
		t.Fatalf("clear must keep the store initialized")
	}
	if provider.signOuts != 1 {
		t.Fatalf("expected one remote sign-out attempt, got %d", provider.signOuts)
	}
}
