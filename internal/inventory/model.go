package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Record tracks the on-hand quantity for one product. Quantity never goes
// negative; a deduction that would cross the floor fails as a whole.
type Record struct {
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}
