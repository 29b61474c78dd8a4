// Package errs defines the error taxonomy shared by the storefront
// services and its mapping onto HTTP status codes. Handlers decide the
// exact wire message; these types carry the classification and details.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// InsufficientStockError rejects a quantity that exceeds what is on hand.
// Available carries the stock count at validation time.
type InsufficientStockError struct {
	ProductID uint
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items available in stock", e.Available)
}

// Status maps a service error onto its HTTP status code. Unknown errors
// map to 500.
func Status(err error) int {
	var (
		notFound     *NotFoundError
		validation   *ValidationError
		insufficient *InsufficientStockError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation),
		errors.As(err, &insufficient),
		errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
