// Package errs holds the error taxonomy shared across services and handlers.
// Repository-layer errors are translated into these at the service boundary;
// handlers map them onto HTTP statuses.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUpdateFailed      = errors.New("update failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrCartNotLoaded     = errors.New("cart not loaded")
)

// ValidationError marks malformed or missing caller input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StockError reports a stock shortfall for a specific product. The message
// names the product, since checkout surfaces it verbatim to the shopper.
type StockError struct {
	ProductID string
	Name      string
}

func (e *StockError) Error() string {
	if e.Name != "" {
		return "insufficient stock for " + e.Name
	}
	return "insufficient stock for product " + e.ProductID
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// InvalidReferenceError reports a related_to catalog query naming a product
// that does not exist. Distinct from a plain ErrNotFound: the list request
// itself was well-formed, the reference inside it was not.
type InvalidReferenceError struct {
	ID string
}

func (e *InvalidReferenceError) Error() string {
	return "related product " + e.ID + " not found"
}
