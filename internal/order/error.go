package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNumberTaken   = errors.New("order number already exists")
	ErrInvalidTransition  = errors.New("illegal order status transition")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidItem        = errors.New("order item has invalid quantity or price")
	ErrCustomerRequired   = errors.New("order customer is required")
	ErrStoreRequired      = errors.New("order store is required")
	ErrNumberGenExhausted = errors.New("could not generate a unique order number")
)
