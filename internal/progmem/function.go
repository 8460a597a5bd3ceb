// internal/progmem/function.go
package progmem

import (
	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/flash"
)

// Entry is the address of a function in a Text segment. Zero is nil.
type Entry uint32

// Text is the code segment: the functions an image may refer to. It is
// filled while the image is built and only read afterwards.
type Text[F any] struct {
	fns []F
}

// Link adds fn to the segment and returns its entry address.
func (t *Text[F]) Link(fn F) Entry {
	t.fns = append(t.fns, fn)
	return Entry(len(t.fns))
}

func (t *Text[F]) Len() int { return len(t.fns) }

// Resolve returns the function at e.
func (t *Text[F]) Resolve(e Entry) F {
	debug.Check(e != 0 && int(e) <= len(t.fns), "progmem: call through invalid entry")
	return t.fns[e-1]
}

// PutFunc links fn and stores its entry address in the image.
func PutFunc[F any](b *flash.Builder, t *Text[F], fn F) flash.Addr {
	return b.Word(uint32(t.Link(fn)))
}

// Func is a function pointer whose value is itself stored in flash. Calling
// it loads the entry address first, then calls through it.
type Func[A, R any] struct {
	slot Pointer[Entry, Raw[Entry]]
	text *Text[func(A) R]
}

func FuncAt[A, R any](img *flash.Image, a flash.Addr, text *Text[func(A) R]) Func[A, R] {
	return Func[A, R]{slot: At[Entry, Raw[Entry]](img, a), text: text}
}

// IsNil reports whether the slot address is unset. It does not load.
func (f Func[A, R]) IsNil() bool { return f.slot.IsNil() }

// Valid reports whether the slot holds a function. It loads the stored
// entry once.
func (f Func[A, R]) Valid() bool {
	return !f.slot.IsNil() && f.slot.Load() != 0
}

func (f Func[A, R]) Call(a A) R {
	debug.Assert(!f.IsNil(), "progmem: call through nil function slot")
	return f.text.Resolve(f.slot.Load())(a)
}
