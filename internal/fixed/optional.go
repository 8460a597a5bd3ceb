// internal/fixed/optional.go
package fixed

// Optional holds a value or nothing.
type Optional[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }
func None[T any]() Optional[T]    { return Optional[T]{} }

func (o Optional[T]) OK() bool       { return o.ok }
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// Or returns the value, or def when there is none.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}
