// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across api/store layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInsufficientStock indicates a requested quantity above the product's stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDiscountExceedsTotal indicates a discount larger than the sale total.
	ErrDiscountExceedsTotal = errors.New("discount exceeds total")

	// ErrInsufficientPayment indicates cash received below the amount due.
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrNoSession indicates an operation that needs a signed-in user without one.
	ErrNoSession = errors.New("no session")
)
