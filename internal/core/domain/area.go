package domain

import "time"

// Area is a named work bucket referenced by users and work reports. Deleting
// an area does not cascade: existing references keep the name as a
// historical tag.
type Area struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
