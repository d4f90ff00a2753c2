package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidName     = errors.New("invalid name (minimum 3 characters required)")
	ErrInvalidPrice    = errors.New("invalid price (must be a positive number)")
	ErrInvalidInput    = errors.New("invalid product input")
)
