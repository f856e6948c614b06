package repositories

import "errors"

// Sentinel errors shared across repositories. Handlers translate these to
// HTTP status codes; nothing below the handler layer touches echo.
var (
	// ErrSelfFollow rejects a follow toggle where follower == following.
	ErrSelfFollow = errors.New("a user cannot follow themself")

	// ErrEmptyUserID rejects operations called with a missing identifier.
	ErrEmptyUserID = errors.New("user id must not be empty")

	// ErrConflict means a concurrent writer won the race; the whole
	// transaction rolled back and the call is safe to retry.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrNotFound is the store-agnostic not-found result.
	ErrNotFound = errors.New("record not found")

	// ErrOutOfStock fails a checkout whose cart exceeds available stock.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrEmptyCart fails a checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)
