package listing

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrTitleRequired   = errors.New("listing title cannot be empty")
	ErrOwnerRequired   = errors.New("listing owner is required")
	ErrInvalidKind     = errors.New("unknown listing kind")
)
