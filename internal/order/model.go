package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus validates an incoming status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

type Order struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	InvoiceNumber string           `json:"invoice_number"`
	Items         []Item           `json:"items,omitempty"`
	Shipping      ShippingSnapshot `json:"shipping"`
	Payment       PaymentSnapshot  `json:"payment"`
	Total         decimal.Decimal  `json:"total"`
	Status        Status           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Item carries a price snapshot copied at checkout; later product price
// edits never change historical orders.
type Item struct {
	ID        int64           `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ShippingSnapshot is frozen into the order at checkout.
type ShippingSnapshot struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentSnapshot records what the shopper entered, masked. No payment
// processor is ever contacted.
type PaymentSnapshot struct {
	CardHolder string `json:"card_holder"`
	CardLast4  string `json:"card_last4"`
}

type FilterInput struct {
	UserID   *uuid.UUID
	Status   *Status
	Search   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

type SortField string

const (
	SortFieldCreatedAt SortField = "created_at"
	SortFieldTotal     SortField = "total"
)

type SortInput struct {
	Field     SortField
	Direction string // "ASC" or "DESC"
}
