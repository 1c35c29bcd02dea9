package probemap

import "fmt"

// OpError describes a failed table operation: the operation tag, a
// stable numeric code and the underlying error.
type OpError struct {
	Op   string
	Code int
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Result carries either a successful payload or an *OpError. It is a
// boundary convenience for callers who prefer a single outcome value
// over a (value, error) pair; the table core is agnostic to which
// convention surrounds it.
type Result[T any] struct {
	value T
	err   *OpError
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Err[T any](op string, err error) Result[T] {
	return Result[T]{err: &OpError{Op: op, Code: codeOf(err), Err: err}}
}

func (r Result[T]) IsError() bool {
	return r.err != nil
}

// Value returns the payload, which is the zero value when IsError.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}

	return r.err
}

func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}
