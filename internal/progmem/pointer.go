// internal/progmem/pointer.go
package progmem

import (
	"cmp"

	"github.com/tamzrod/ino-console/internal/flash"
)

// Pointer addresses a T in read-only storage. It is a plain value: copying
// it is free and arithmetic only changes the address. The zero address is
// the nil sentinel and is never checked implicitly.
type Pointer[T any, L Loader[T]] struct {
	img  *flash.Image
	addr flash.Addr
}

func At[T any, L Loader[T]](img *flash.Image, a flash.Addr) Pointer[T, L] {
	return Pointer[T, L]{img: img, addr: a}
}

func elemSize[T any, L Loader[T]]() flash.Addr {
	var l L
	return l.Size()
}

func (p Pointer[T, L]) Addr() flash.Addr        { return p.addr }
func (p Pointer[T, L]) Image() *flash.Image     { return p.img }
func (p Pointer[T, L]) IsNil() bool             { return p.addr == 0 }
func (p Pointer[T, L]) Deref() Ref[T, L]        { return Ref[T, L]{p: p} }
func (p Pointer[T, L]) Load() T                 { return p.Deref().Load() }
func (p Pointer[T, L]) Index(i int) Ref[T, L]   { return p.Add(i).Deref() }
func (p Pointer[T, L]) Sub(n int) Pointer[T, L] { return p.Add(-n) }

// Add returns p advanced by n elements.
func (p Pointer[T, L]) Add(n int) Pointer[T, L] {
	p.addr = flash.Addr(int64(p.addr) + int64(n)*int64(elemSize[T, L]()))
	return p
}

// Inc advances p by one element in place and returns the new value.
func (p *Pointer[T, L]) Inc() Pointer[T, L] {
	*p = p.Add(1)
	return *p
}

// Dec moves p back by one element in place and returns the new value.
func (p *Pointer[T, L]) Dec() Pointer[T, L] {
	*p = p.Add(-1)
	return *p
}

// Diff is the distance from q to p in elements.
func (p Pointer[T, L]) Diff(q Pointer[T, L]) int {
	return int((int64(p.addr) - int64(q.addr)) / int64(elemSize[T, L]()))
}

func (p Pointer[T, L]) Compare(q Pointer[T, L]) int { return cmp.Compare(p.addr, q.addr) }
func (p Pointer[T, L]) Less(q Pointer[T, L]) bool   { return p.addr < q.addr }
func (p Pointer[T, L]) Equal(q Pointer[T, L]) bool  { return p.addr == q.addr }

// Ref is a Pointer that has been dereferenced but not loaded. The referent
// is read-only; there is no way to store through a Ref.
type Ref[T any, L Loader[T]] struct {
	p Pointer[T, L]
}

// Load copies the referenced value into working memory.
func (r Ref[T, L]) Load() T {
	var l L
	return l.Load(r.p.img, r.p.addr)
}

func (r Ref[T, L]) Ptr() Pointer[T, L] { return r.p }
func (r Ref[T, L]) Addr() flash.Addr   { return r.p.addr }

// Member selects a field of a record T stored at a fixed offset.
type Member[T any, U any, LU Loader[U]] struct {
	Offset flash.Addr
}

// Select returns a pointer to field m of the record r refers to, without
// loading the record.
func Select[T any, L Loader[T], U any, LU Loader[U]](r Ref[T, L], m Member[T, U, LU]) Pointer[U, LU] {
	return At[U, LU](r.p.img, r.p.addr+m.Offset)
}
