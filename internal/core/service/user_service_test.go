package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
	"github.com/civiworks/workboard/internal/core/ports"
)

func newUserService() (*UserAdminService, *stubProvider, *stubUserRepo) {
	provider := newStubProvider()
	users := newStubUserRepo()
	gateway := NewAuthService(provider, users, NewSessionStore(), zerolog.Nop())
	return NewUserService(users, gateway, zerolog.Nop()), provider, users
}

func TestUserService_Create(t *testing.T) {
	svc, _, users := newUserService()

	record, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Dana", Email: "dana@example.com", Password: "s3cret", Role: domain.RoleWorker, Area: "south",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if record.Role != domain.RoleWorker || record.Area != "south" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if _, err := users.Get(context.Background(), record.ID); err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
}

func TestUserService_Create_SuperadminRefused(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "root@example.com", Password: "s3cret", Role: domain.RoleSuperadmin,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Create_UnknownRoleRefused(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "x@example.com", Password: "s3cret", Role: "manager",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()
	input := ports.CreateUserInput{Email: "dup@example.com", Password: "s3cret", Role: domain.RoleAdmin}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUserService_DeleteLeavesCredential(t *testing.T) {
	svc, provider, _ := newUserService()
	record, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email: "gone@example.com", Password: "s3cret", Role: domain.RoleWorker,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	// The provider credential survives; its next sign-in resolves to the
	// missing-role state, not to invalid credentials.
	if _, ok := provider.credentials["gone@example.com"]; !ok {
		t.Fatalf("credential must be left behind")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newUserService()
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
