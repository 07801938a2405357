package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/civiworks/workboard/internal/core/domain"
)

type stubAreaRepo struct {
	areas     map[string]*domain.Area
	nextID    int
	createErr error
}

func newStubAreaRepo() *stubAreaRepo {
	return &stubAreaRepo{areas: make(map[string]*domain.Area)}
}

func (r *stubAreaRepo) Create(_ context.Context, area *domain.Area) (*domain.Area, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *area
	clone.ID = string(rune('a' + r.nextID - 1))
	r.areas[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAreaRepo) List(_ context.Context) ([]domain.Area, error) {
	out := make([]domain.Area, 0, len(r.areas))
	for _, a := range r.areas {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAreaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.areas[id]; !ok {
		return domain.ErrAreaNotFound
	}
	delete(r.areas, id)
	return nil
}

func TestAreaService_Create(t *testing.T) {
	repo := newStubAreaRepo()
	svc := NewAreaService(repo, zerolog.Nop())

	area, err := svc.Create(context.Background(), "north", "northern district")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if area.ID == "" || area.CreatedAt.IsZero() {
		t.Fatalf("area missing id or creation time: %+v", area)
	}
}

func TestAreaService_Create_EmptyName(t *testing.T) {
	svc := NewAreaService(newStubAreaRepo(), zerolog.Nop())
	if _, err := svc.Create(context.Background(), "", "desc"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestAreaService_Delete(t *testing.T) {
	repo := newStubAreaRepo()
	svc := NewAreaService(repo, zerolog.Nop())

	area, err := svc.Create(context.Background(), "north", "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), area.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), area.ID); !errors.Is(err, domain.ErrAreaNotFound) {
		t.Fatalf("expected ErrAreaNotFound, got %v", err)
	}
}
