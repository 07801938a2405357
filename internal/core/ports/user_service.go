package ports

import (
	"context"

	"github.com/civiworks/workboard/internal/core/domain"
)

// CreateUserInput carries an admin-initiated account creation.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Area     string
}

// UserService manages user accounts on behalf of administrators.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.UserRecord, error)
	List(ctx context.Context) ([]domain.UserRecord, error)
	Delete(ctx context.Context, id string) error
}
