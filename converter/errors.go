package converter

import "errors"

// Sentinel errors for conversion. Each aborts the whole conversion.
var (
	ErrUnknownTag                   = errors.New("unknown tag")
	ErrImageMissingSrc              = errors.New("image missing src attribute")
	ErrTableNestingTooDeep          = errors.New("table nesting too deep")
	ErrListItemWithoutEnclosingList = errors.New("list item without enclosing list")

	// ErrInvalidConfig wraps config validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
