package store

import "errors"

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrNameRequired  = errors.New("store name cannot be empty")
	ErrOwnerRequired = errors.New("store owner is required")
)
