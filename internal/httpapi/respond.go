package httpapi

import (
	"errors"
	"net/http"

	"toko-be/internal/cart"
	"toko-be/internal/inventory"
	"toko-be/internal/order"
	"toko-be/internal/product"
	"toko-be/internal/review"
	"toko-be/internal/user"

	"github.com/gin-gonic/gin"
)

// mapErrorToStatus translates service sentinels into HTTP status codes.
// Anything unrecognized is a 500; its detail stays in the log, not the body.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrUnauthenticated),
		errors.Is(err, user.ErrUnauthenticated),
		errors.Is(err, review.ErrUnauthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, user.ErrForbidden),
		errors.Is(err, user.ErrSelfDemotion):
		return http.StatusForbidden

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, review.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, inventory.ErrRecordNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidShipping),
		errors.Is(err, order.ErrInvalidPayment),
		errors.Is(err, product.ErrInvalidName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrWeakPassword):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
