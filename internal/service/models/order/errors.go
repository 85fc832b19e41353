package order

import "errors"

var (
	// ErrNotFound is returned when an order id does not resolve.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when a status update is not
	// permitted from the order's actual current status, including the
	// case where a concurrent writer already moved the order on.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReferenceNotFound is returned when order creation references a
	// branch, user or product that does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")

	// ErrEmptyOrder is returned when order creation carries no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrInvalidQuantity is returned when an item quantity is below 1.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")

	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidType          = errors.New("invalid order type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)
