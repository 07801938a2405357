package domain

import "time"

// UserRecord is the application-level role record stored in the users
// collection, keyed by the identity provider's credential id. Role is
// immutable once assigned; there is no role-edit operation.
type UserRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Area      string    `json:"area,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
