package report

import "sync"

// Lazy is a value computed at most once, on first Get.
type Lazy[T any] struct {
	once  sync.Once
	fn    func() T
	value T
}

// NewLazy returns a cell that computes its value with fn.
func NewLazy[T any](fn func() T) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Get computes the value if needed and returns it.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		l.value = l.fn()
		l.fn = nil
	})
	return l.value
}
