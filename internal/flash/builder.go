// internal/flash/builder.go
package flash

import (
	"encoding/binary"
	"math"

	"github.com/sigurn/crc8"

	"github.com/tamzrod/ino-console/internal/debug"
)

// Builder lays out an image before it is sealed. Scalars are stored
// little-endian at their natural alignment.
//
// A Builder is not safe for concurrent use and must not be used after Seal.
type Builder struct {
	buf    []byte
	sealed bool
}

func NewBuilder() *Builder {
	return &Builder{buf: make([]byte, HeaderSize)}
}

// Here is the address the next value will be written to (before alignment).
func (b *Builder) Here() Addr { return Addr(len(b.buf)) }

// Align pads with zeros up to a multiple of n.
func (b *Builder) Align(n Addr) {
	b.check()
	for Addr(len(b.buf))%n != 0 {
		b.buf = append(b.buf, 0)
	}
}

func (b *Builder) check() {
	debug.Check(!b.sealed, "flash: builder used after seal")
}

func (b *Builder) Byte(v uint8) Addr {
	b.check()
	a := b.Here()
	b.buf = append(b.buf, v)
	return a
}

func (b *Builder) Half(v uint16) Addr {
	b.Align(2)
	a := b.Here()
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return a
}

func (b *Builder) Word(v uint32) Addr {
	b.Align(4)
	a := b.Here()
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return a
}

func (b *Builder) Float(v float32) Addr {
	return b.Word(math.Float32bits(v))
}

func (b *Builder) Address(v Addr) Addr {
	return b.Word(uint32(v))
}

// Bytes appends p unaligned.
func (b *Builder) Bytes(p []byte) Addr {
	b.check()
	a := b.Here()
	b.buf = append(b.buf, p...)
	return a
}

// Reserve appends n zero bytes, word-aligned, to be patched before sealing.
func (b *Builder) Reserve(n Addr) Addr {
	b.Align(4)
	a := b.Here()
	b.buf = append(b.buf, make([]byte, n)...)
	return a
}

// PatchWord overwrites a previously written word.
func (b *Builder) PatchWord(a Addr, v uint32) {
	b.check()
	debug.Check(a%4 == 0 && a >= HeaderSize && int(a)+4 <= len(b.buf), "flash: patch outside of image")
	binary.LittleEndian.PutUint32(b.buf[a:], v)
}

// Seal writes the header and returns the finished image. The builder cannot
// be used afterwards.
func (b *Builder) Seal() (*Image, error) {
	b.check()
	b.sealed = true

	payload := b.buf[HeaderSize:]
	binary.LittleEndian.PutUint32(b.buf[0:4], headerMagic)
	binary.LittleEndian.PutUint32(b.buf[4:8], uint32(len(payload)))
	b.buf[8] = crc8.Checksum(payload, imageCRC)

	return FromBytes(b.buf)
}
