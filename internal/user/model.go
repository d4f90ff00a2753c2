package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
}

// Profile holds what the shopper fills in on the account page. Every field
// is optional until the first checkout.
type Profile struct {
	UserID    uuid.UUID
	FullName  *string
	Address   *string
	Phone     *string
	UpdatedAt time.Time
}

type UpdateProfileParams struct {
	FullName *string
	Address  *string
	Phone    *string
}

// AccountSummary is the row shape of the admin user listing.
type AccountSummary struct {
	ID        uuid.UUID
	Email     string
	FullName  *string
	IsAdmin   bool
	CreatedAt time.Time
}
