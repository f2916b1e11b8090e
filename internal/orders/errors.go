package orders

import "fmt"

// ValidationError is returned for malformed carts. The store is never touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError is returned when a line references a product that does not exist
// or is no longer active.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product ID %d not found", e.ProductID)
}

// InsufficientStockError is returned when a line asks for more than is in stock,
// counting earlier lines of the same cart.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product ID %d", e.ProductID)
}

// StoreFailure wraps any error raised by the store itself: connection loss,
// lock wait timeouts, constraint violations, context cancellation.
type StoreFailure struct {
	Op  string
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("order store: %s: %v", e.Op, e.Err)
}

func (e *StoreFailure) Unwrap() error { return e.Err }
