// internal/progmem/string.go
package progmem

import (
	"io"
	"iter"
	"math"
	"strings"

	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/flash"
)

// Npos means "to the end" for Substr.
const Npos = math.MaxInt

// chunkSize bounds the working memory used to stream a View.
const chunkSize = 32

// View is a read-only character sequence in flash: a pointer and a length.
// Copying a View never copies characters.
type View struct {
	data Pointer[byte, Byte]
	size int
}

func MakeView(data Pointer[byte, Byte], size int) View {
	return View{data: data, size: size}
}

func (v View) Size() int                 { return v.size }
func (v View) Data() Pointer[byte, Byte] { return v.data }
func (v View) Empty() bool               { return v.size == 0 }
func (v View) Front() Ref[byte, Byte]    { return v.At(0) }
func (v View) Back() Ref[byte, Byte]     { return v.At(v.size - 1) }

// At refers to the i'th character. There is no bounds check outside of
// debug builds.
func (v View) At(i int) Ref[byte, Byte] {
	debug.Assert(i >= 0 && i < v.size, "progmem: view index out of range")
	return v.data.Index(i)
}

func (v *View) RemoveSuffix(n int) {
	v.size -= n
}

func (v *View) RemovePrefix(n int) {
	v.RemoveSuffix(n)
	v.data = v.data.Add(n)
}

// Substr returns the view of at most count characters starting at pos.
// pos is clamped to [0, Size()]; a pos past the end yields an empty view
// positioned at the end.
func (v View) Substr(pos, count int) View {
	if pos < 0 {
		pos = 0
	}
	if pos > v.size {
		pos = v.size
	}
	v.RemovePrefix(pos)
	if count >= 0 && v.size > count {
		v.size = count
	}
	return v
}

// Bytes yields the characters one load at a time.
func (v View) Bytes() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		p := v.data
		for i := 0; i < v.size; i++ {
			if !yield(p.Load()) {
				return
			}
			p.Inc()
		}
	}
}

// Equal compares v against an ordinary string element by element, loading
// one character at a time. A NUL in s terminates it.
func (v View) Equal(s string) bool {
	p := v.data
	for i := 0; i < v.size; i++ {
		if i >= len(s) || s[i] == 0 {
			return false
		}
		if p.Load() != s[i] {
			return false
		}
		p.Inc()
	}
	return v.size == len(s) || s[v.size] == 0
}

// EqualView compares two flash views.
func (v View) EqualView(o View) bool {
	if v.size != o.size {
		return false
	}
	p, q := v.data, o.data
	for i := 0; i < v.size; i++ {
		if p.Load() != q.Load() {
			return false
		}
		p.Inc()
		q.Inc()
	}
	return true
}

// WriteTo streams the characters to w in bounded chunks.
func (v View) WriteTo(w io.Writer) (int64, error) {
	var (
		buf   [chunkSize]byte
		total int64
	)
	for !v.Empty() {
		n := min(v.size, len(buf))
		v.data.img.Copy(buf[:n], v.data.addr)
		m, err := w.Write(buf[:n])
		total += int64(m)
		if err != nil {
			return total, err
		}
		v.RemovePrefix(n)
	}
	return total, nil
}

// String materializes the whole view in working memory.
func (v View) String() string {
	var sb strings.Builder
	sb.Grow(v.size)
	v.WriteTo(&sb)
	return sb.String()
}

// Str loads a stored View: a data address followed by a 16-bit length.
type Str struct{}

const viewRecordSize flash.Addr = 8

func (Str) Load(img *flash.Image, a flash.Addr) View {
	return View{
		data: At[byte, Byte](img, img.LoadAddr(a)),
		size: int(img.LoadHalf(a + flash.AddrSize)),
	}
}

func (Str) Size() flash.Addr { return viewRecordSize }

// Literal is a string placed into an image under construction.
type Literal struct {
	Addr flash.Addr
	Len  int
}

// PutString stores the characters of s followed by a NUL terminator.
func PutString(b *flash.Builder, s string) Literal {
	a := b.Bytes([]byte(s))
	b.Byte(0)
	return Literal{Addr: a, Len: len(s)}
}

// PutView stores a view record for l, as loaded by Str.
func PutView(b *flash.Builder, l Literal) flash.Addr {
	debug.Check(l.Len <= math.MaxUint16, "progmem: string too long for a view record")
	a := b.Address(l.Addr)
	b.Half(uint16(l.Len))
	b.Half(0)
	return a
}

// In returns the view of l inside the sealed image.
func (l Literal) In(img *flash.Image) View {
	return MakeView(At[byte, Byte](img, l.Addr), l.Len)
}
