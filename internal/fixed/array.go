// internal/fixed/array.go

// Package fixed holds the bounded containers used by the console: nothing in
// here grows past the capacity it was created with.
package fixed

// Array is a sequence with a fixed capacity. Its backing storage is
// allocated once.
type Array[T any] struct {
	buf []T
}

func NewArray[T any](capacity int) *Array[T] {
	return &Array[T]{buf: make([]T, 0, capacity)}
}

// Push appends v. It returns false, leaving the array unchanged, when the
// array is full.
func (a *Array[T]) Push(v T) bool {
	if a.Full() {
		return false
	}
	a.buf = append(a.buf, v)
	return true
}

// Pop removes the last element. It returns false when the array is empty.
func (a *Array[T]) Pop() (T, bool) {
	var zero T
	if len(a.buf) == 0 {
		return zero, false
	}
	v := a.buf[len(a.buf)-1]
	a.buf[len(a.buf)-1] = zero
	a.buf = a.buf[:len(a.buf)-1]
	return v, true
}

func (a *Array[T]) At(i int) T { return a.buf[i] }
func (a *Array[T]) Len() int   { return len(a.buf) }
func (a *Array[T]) Cap() int   { return cap(a.buf) }
func (a *Array[T]) Full() bool { return len(a.buf) == cap(a.buf) }

// Slice is a bounded span over the current elements. It aliases the array
// and is only valid until the next Reset.
func (a *Array[T]) Slice() []T { return a.buf[:len(a.buf):len(a.buf)] }

// Reset empties the array, keeping its storage.
func (a *Array[T]) Reset() {
	clear(a.buf)
	a.buf = a.buf[:0]
}
