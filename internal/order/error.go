package order

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized: cannot access others' orders")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidShipping = errors.New("shipping details are incomplete")
	ErrInvalidPayment  = errors.New("payment details are invalid")
)
