// internal/flash/stats.go
package flash

import "sync/atomic"

// Stats counts the loads performed on an image, per load width.
type Stats struct {
	Bytes  uint64
	Halves uint64
	Words  uint64
	Floats uint64
	Addrs  uint64
	Copies uint64 // bulk copies
	Copied uint64 // bytes moved by bulk copies
}

// Total is the number of load operations of any width.
func (s Stats) Total() uint64 {
	return s.Bytes + s.Halves + s.Words + s.Floats + s.Addrs + s.Copies
}

type counters struct {
	bytes, halves, words, floats, addrs, copies, copied atomic.Uint64
}

// Stats returns a snapshot of the load counters.
func (m *Image) Stats() Stats {
	return Stats{
		Bytes:  m.stats.bytes.Load(),
		Halves: m.stats.halves.Load(),
		Words:  m.stats.words.Load(),
		Floats: m.stats.floats.Load(),
		Addrs:  m.stats.addrs.Load(),
		Copies: m.stats.copies.Load(),
		Copied: m.stats.copied.Load(),
	}
}

// ResetStats zeroes the load counters.
func (m *Image) ResetStats() {
	for _, c := range []*atomic.Uint64{
		&m.stats.bytes, &m.stats.halves, &m.stats.words, &m.stats.floats,
		&m.stats.addrs, &m.stats.copies, &m.stats.copied,
	} {
		c.Store(0)
	}
}
