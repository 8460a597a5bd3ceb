// internal/board/sim/sim.go

// Package sim is an in-memory board. Outputs are remembered, inputs are set
// from the outside with SetInput and SetAnalog, and every write is logged.
package sim

import (
	"fmt"
	"sync"

	"github.com/tamzrod/ino-console/internal/pins"
)

// Write is one logged output operation.
type Write struct {
	Pin    int
	Analog bool
	Value  int
}

type Board struct {
	mu     sync.Mutex
	modes  map[int]pins.Mode
	levels map[int]pins.Level
	analog map[int]int
	log    []Write
}

func New() *Board {
	return &Board{
		modes:  map[int]pins.Mode{},
		levels: map[int]pins.Level{},
		analog: map[int]int{},
	}
}

func (b *Board) SetMode(pin int, m pins.Mode) error {
	if err := check(pin); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modes[pin] = m
	return nil
}

// Mode returns the last mode set on pin and whether one was set.
func (b *Board) Mode(pin int) (pins.Mode, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.modes[pin]
	return m, ok
}

// DigitalRead returns the level last written or set on pin. An input-pullup
// pin that was never driven reads High.
func (b *Board) DigitalRead(pin int) (pins.Level, error) {
	if err := check(pin); err != nil {
		return pins.Low, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.levels[pin]
	if !ok && b.modes[pin] == pins.InputPullup {
		return pins.High, nil
	}
	return l, nil
}

func (b *Board) DigitalWrite(pin int, l pins.Level) error {
	if err := check(pin); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[pin] = l
	b.log = append(b.log, Write{Pin: pin, Value: int(l)})
	return nil
}

func (b *Board) AnalogRead(pin int) (int, error) {
	if err := check(pin); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.analog[pin], nil
}

func (b *Board) AnalogWrite(pin int, v int) error {
	if err := check(pin); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analog[pin] = v
	b.log = append(b.log, Write{Pin: pin, Analog: true, Value: v})
	return nil
}

// SetInput drives the digital level seen by DigitalRead on pin.
func (b *Board) SetInput(pin int, l pins.Level) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[pin] = l
}

// SetAnalog sets the value seen by AnalogRead on pin.
func (b *Board) SetAnalog(pin int, v int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.analog[pin] = v
}

// Writes returns a copy of the write log.
func (b *Board) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Write(nil), b.log...)
}

func check(pin int) error {
	if pin < 0 || pin >= pins.Count {
		return fmt.Errorf("sim: no pin %d", pin)
	}
	return nil
}
