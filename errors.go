package probemap

import "errors"

var (
	// ErrClosed is reported when a table is used after Clear or Close.
	ErrClosed = errors.New("probemap: table is closed")

	// ErrNilEqual and ErrNilHash are reported by New/NewSet when the
	// required callbacks are missing.
	ErrNilEqual = errors.New("probemap: equality function is required")
	ErrNilHash  = errors.New("probemap: hash function is required")

	// ErrNilKey is the code for a nil key reference. The table itself
	// cannot observe nilness of an opaque key; callers validating their
	// own key types should report this error.
	ErrNilKey = errors.New("probemap: key is nil")

	// ErrAllocation is reported when a slot array of the requested
	// capacity cannot be represented.
	ErrAllocation = errors.New("probemap: allocation failed")

	// ErrNotFound is the normal outcome of Remove or Update on an
	// absent key.
	ErrNotFound = errors.New("probemap: key not found")

	// ErrAlreadyPresent is reported by the strict Insert variant when
	// the key is already stored.
	ErrAlreadyPresent = errors.New("probemap: key already present")

	// ErrOutOfRange is reported for positional arguments outside the
	// table's bounds, such as a negative Grow target.
	ErrOutOfRange = errors.New("probemap: index out of range")
)

// Stable numeric codes carried by OpError, one per error case.
const (
	CodeOK = iota
	CodeClosed
	CodeNilFunc
	CodeNilKey
	CodeAllocation
	CodeNotFound
	CodeAlreadyPresent
	CodeOutOfRange
	CodeUnknown
)

func codeOf(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrClosed):
		return CodeClosed
	case errors.Is(err, ErrNilEqual), errors.Is(err, ErrNilHash):
		return CodeNilFunc
	case errors.Is(err, ErrNilKey):
		return CodeNilKey
	case errors.Is(err, ErrAllocation):
		return CodeAllocation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyPresent):
		return CodeAlreadyPresent
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	default:
		return CodeUnknown
	}
}
