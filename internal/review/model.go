package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	// ReviewerName comes from the author's profile; nil when the profile
	// has no name saved.
	ReviewerName *string   `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type SubmitParams struct {
	ProductID uuid.UUID
	Rating    int
	Comment   string
}
