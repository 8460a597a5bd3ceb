// internal/progmem/loader.go

// Package progmem provides typed handles to values that live in read-only
// storage. A Pointer never dereferences directly: every read goes through
// the Loader chosen by its type parameters, so the load width is fixed at
// compile time and no type tag is kept at run time.
package progmem

import (
	"encoding/binary"

	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/flash"
)

// Loader copies one T out of an image into working memory.
// Implementations are zero-size; they are selected, never stored.
type Loader[T any] interface {
	Load(img *flash.Image, a flash.Addr) T
	Size() flash.Addr
}

type Byte struct{}

func (Byte) Load(img *flash.Image, a flash.Addr) uint8 { return img.LoadByte(a) }
func (Byte) Size() flash.Addr                          { return 1 }

type Int8 struct{}

func (Int8) Load(img *flash.Image, a flash.Addr) int8 { return int8(img.LoadByte(a)) }
func (Int8) Size() flash.Addr                         { return 1 }

type Half struct{}

func (Half) Load(img *flash.Image, a flash.Addr) uint16 { return img.LoadHalf(a) }
func (Half) Size() flash.Addr                           { return 2 }

type Int16 struct{}

func (Int16) Load(img *flash.Image, a flash.Addr) int16 { return int16(img.LoadHalf(a)) }
func (Int16) Size() flash.Addr                          { return 2 }

type Word struct{}

func (Word) Load(img *flash.Image, a flash.Addr) uint32 { return img.LoadWord(a) }
func (Word) Size() flash.Addr                           { return 4 }

type Int32 struct{}

func (Int32) Load(img *flash.Image, a flash.Addr) int32 { return int32(img.LoadWord(a)) }
func (Int32) Size() flash.Addr                          { return 4 }

type Float struct{}

func (Float) Load(img *flash.Image, a flash.Addr) float32 { return img.LoadFloat(a) }
func (Float) Size() flash.Addr                            { return 4 }

// Address loads a stored address as a plain value.
type Address struct{}

func (Address) Load(img *flash.Image, a flash.Addr) flash.Addr { return img.LoadAddr(a) }
func (Address) Size() flash.Addr                               { return flash.AddrSize }

// Ptr loads a stored address and rewraps it as a Pointer into the same
// image, so chains of read-only data can be followed without leaving the
// read-only address space.
type Ptr[T any, L Loader[T]] struct{}

func (Ptr[T, L]) Load(img *flash.Image, a flash.Addr) Pointer[T, L] {
	return At[T, L](img, img.LoadAddr(a))
}

func (Ptr[T, L]) Size() flash.Addr { return flash.AddrSize }

// Raw loads any fixed-size value (see encoding/binary) by its size: 1, 2
// and 4 byte values use the matching scalar load, anything else is
// bulk-copied.
type Raw[T any] struct{}

func (Raw[T]) Size() flash.Addr {
	var v T
	n := binary.Size(v)
	debug.Check(n >= 0, "progmem: Raw of a type without fixed size")
	return flash.Addr(n)
}

func (r Raw[T]) Load(img *flash.Image, a flash.Addr) T {
	var (
		v   T
		buf [4]byte
		p   []byte
	)
	switch n := r.Size(); n {
	case 1:
		buf[0] = img.LoadByte(a)
		p = buf[:1]
	case 2:
		binary.LittleEndian.PutUint16(buf[:], img.LoadHalf(a))
		p = buf[:2]
	case 4:
		binary.LittleEndian.PutUint32(buf[:], img.LoadWord(a))
		p = buf[:4]
	default:
		p = make([]byte, n)
		img.Copy(p, a)
	}
	if _, err := binary.Decode(p, binary.LittleEndian, &v); err != nil {
		debug.Unreachable("progmem: decode: " + err.Error())
	}
	return v
}
