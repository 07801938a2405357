package handler

import (
	"time"

	"github.com/civiworks/workboard/internal/core/domain"
)

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setupRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type authResponse struct {
	Token string             `json:"token,omitempty"`
	User  *domain.UserRecord `json:"user,omitempty"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=president admin worker"`
	Area     string `json:"area,omitempty"`
}

type createAreaRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type sessionResponse struct {
	Identity      *domain.Identity `json:"identity,omitempty"`
	Role          domain.Role      `json:"role,omitempty"`
	Initialized   bool             `json:"initialized"`
	SetupRequired bool             `json:"setup_required"`
	Navigation    []string         `json:"navigation,omitempty"`
}

type setupStatusResponse struct {
	Provisioned bool `json:"provisioned"`
}

type dashboardResponse struct {
	View       string          `json:"view"`
	Navigation []string        `json:"navigation"`
	Stats      *dashboardStats `json:"stats,omitempty"`
}

type dashboardStats struct {
	TotalWorkers   int `json:"total_workers"`
	ActiveWorkers  int `json:"active_workers"`
	CompletedToday int `json:"completed_today"`
}

type reportResponse struct {
	Reports []domain.WorkReport `json:"reports"`
}

// reportFilterQuery carries the map view's query parameters. Dates are
// RFC 3339 or plain YYYY-MM-DD.
type reportFilterQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=in-progress completed"`
	Area   string `query:"area"`
	From   string `query:"from"`
	To     string `query:"to"`
}

func parseFilterDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
