package inventory

import "errors"

var (
	ErrRecordNotFound    = errors.New("inventory record not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
)
