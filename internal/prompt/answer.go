package prompt

// Answer is the result of a prompt that the operator may cancel: either a
// value, or cancelled with no value.
type Answer[T any] struct {
	value T
	ok    bool
}

// Some wraps an answered value.
func Some[T any](v T) Answer[T] {
	return Answer[T]{value: v, ok: true}
}

// Cancelled is the answer of a prompt the operator backed out of.
func Cancelled[T any]() Answer[T] {
	return Answer[T]{}
}

// Get returns the value and whether one was given.
func (a Answer[T]) Get() (T, bool) {
	return a.value, a.ok
}

// IsCancelled reports whether the prompt was cancelled.
func (a Answer[T]) IsCancelled() bool {
	return !a.ok
}

// Or returns the value, or fallback when cancelled.
func (a Answer[T]) Or(fallback T) T {
	if !a.ok {
		return fallback
	}
	return a.value
}
