package markterm

import "errors"

// Sentinel errors for caller contract violations. Parsing and rendering
// are otherwise total: malformed markdown degrades to literal text and
// unknown theme names fall back to the default, neither is an error.
var (
	// ErrInvalidWidth indicates a zero or negative wrap width.
	ErrInvalidWidth = errors.New("width must be a positive integer")

	// ErrInvalidTheme indicates a structurally invalid theme name,
	// not merely an unknown one.
	ErrInvalidTheme = errors.New("invalid theme name")
)
