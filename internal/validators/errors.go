package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidCollectionID = errors.New("invalid collection id")
	ErrEmptyName           = errors.New("name is required")
	ErrInvalidMethod       = errors.New("invalid HTTP method")
	ErrEmptyURL            = errors.New("url is required")
	ErrInvalidOrder        = errors.New("order must not be negative")
	ErrEmptyKey            = errors.New("key is required")
	ErrDuplicateID         = errors.New("duplicate id in tree")
	ErrTreeTooDeep         = errors.New("folder nesting too deep")
	ErrParentMismatch      = errors.New("parent reference does not match tree position")
)
