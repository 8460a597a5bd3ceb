// internal/flash/image.go

// Package flash models the read-only storage region of the console: a sealed
// image that can only be read through width-specific loads.
//
// Contents are kept in 32-bit words. Byte and half-word loads extract from
// the containing word; unaligned loads are composed from byte loads, the same
// way a word-only bus has to be read.
package flash

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/sigurn/crc8"

	"github.com/tamzrod/ino-console/internal/debug"
)

// Addr is an address in read-only storage. Zero is never a valid data address.
type Addr uint32

// AddrSize is the number of bytes an Addr occupies when stored in an image.
const AddrSize Addr = 4

// Image header layout:
// 0-3  Magic "INOF"
// 4-7  Payload length
// 8    CRC-8/MAXIM of the payload
// 9-11 Reserved
const (
	HeaderSize Addr = 12

	headerMagic uint32 = 'I' | 'N'<<8 | 'O'<<16 | 'F'<<24
)

var (
	ErrShortImage = errors.New("flash: image shorter than header")
	ErrMagic      = errors.New("flash: bad image magic")
	ErrChecksum   = errors.New("flash: checksum mismatch")
)

var imageCRC = crc8.MakeTable(crc8.CRC8_MAXIM)

// Image is a sealed read-only storage region. It is safe for concurrent
// reads; nothing mutates it after construction.
type Image struct {
	words []uint32
	size  Addr
	crc   uint8

	stats counters
}

// FromBytes rebuilds an image from its raw representation, validating the
// header and the payload checksum.
func FromBytes(raw []byte) (*Image, error) {
	if len(raw) < int(HeaderSize) {
		return nil, ErrShortImage
	}
	if binary.LittleEndian.Uint32(raw[0:4]) != headerMagic {
		return nil, ErrMagic
	}
	n := binary.LittleEndian.Uint32(raw[4:8])
	if uint64(HeaderSize)+uint64(n) > uint64(len(raw)) {
		return nil, ErrShortImage
	}
	payload := raw[HeaderSize : HeaderSize+Addr(n)]
	if crc8.Checksum(payload, imageCRC) != raw[8] {
		return nil, ErrChecksum
	}

	size := HeaderSize + Addr(n)
	words := make([]uint32, (size+3)/4)
	for i := range words {
		var w [4]byte
		copy(w[:], raw[4*i:min(4*i+4, int(size))])
		words[i] = binary.LittleEndian.Uint32(w[:])
	}
	return &Image{words: words, size: size, crc: raw[8]}, nil
}

// Size is the total size of the image in bytes, header included.
func (m *Image) Size() Addr { return m.size }

// Base is the first data address.
func (m *Image) Base() Addr { return HeaderSize }

// Checksum is the CRC-8 recorded in the header.
func (m *Image) Checksum() uint8 { return m.crc }

// Bytes returns a copy of the raw image, header included.
func (m *Image) Bytes() []byte {
	out := make([]byte, m.size)
	for i := range out {
		out[i] = m.rawByte(Addr(i))
	}
	return out
}

func (m *Image) word(a Addr) uint32 {
	debug.Assert(a < m.size, "flash: load out of range")
	return m.words[a>>2]
}

func (m *Image) rawByte(a Addr) byte {
	return byte(m.word(a) >> (8 * (a & 3)))
}

// LoadByte reads one byte.
func (m *Image) LoadByte(a Addr) uint8 {
	m.stats.bytes.Add(1)
	return m.rawByte(a)
}

// LoadHalf reads a little-endian 16-bit value.
func (m *Image) LoadHalf(a Addr) uint16 {
	m.stats.halves.Add(1)
	return m.half(a)
}

func (m *Image) half(a Addr) uint16 {
	if a&3 <= 2 {
		return uint16(m.word(a) >> (8 * (a & 3)))
	}
	return uint16(m.rawByte(a)) | uint16(m.rawByte(a+1))<<8
}

// LoadWord reads a little-endian 32-bit value.
func (m *Image) LoadWord(a Addr) uint32 {
	m.stats.words.Add(1)
	return m.word32(a)
}

func (m *Image) word32(a Addr) uint32 {
	if a&3 == 0 {
		return m.word(a)
	}
	// unaligned access forbidden on the bus
	return uint32(m.rawByte(a)) |
		uint32(m.rawByte(a+1))<<8 |
		uint32(m.rawByte(a+2))<<16 |
		uint32(m.rawByte(a+3))<<24
}

// LoadFloat reads an IEEE-754 single precision value.
func (m *Image) LoadFloat(a Addr) float32 {
	m.stats.floats.Add(1)
	return math.Float32frombits(m.word32(a))
}

// LoadAddr reads a stored address.
func (m *Image) LoadAddr(a Addr) Addr {
	m.stats.addrs.Add(1)
	return Addr(m.word32(a))
}

// Copy bulk-reads len(dst) bytes starting at a, one word at a time.
func (m *Image) Copy(dst []byte, a Addr) {
	m.stats.copies.Add(1)
	m.stats.copied.Add(uint64(len(dst)))
	debug.Assert(uint64(a)+uint64(len(dst)) <= uint64(m.size), "flash: copy out of range")

	i := 0
	for i < len(dst) {
		w := m.word(a)
		for s := a & 3; s < 4 && i < len(dst); s++ {
			dst[i] = byte(w >> (8 * s))
			i, a = i+1, a+1
		}
	}
}
