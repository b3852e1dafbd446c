package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("product name cannot be empty")
	ErrStoreRequired   = errors.New("product store is required")
	ErrInvalidPrice    = errors.New("price must be a non-negative decimal")
	ErrInvalidStock    = errors.New("stock must not be negative")
)
