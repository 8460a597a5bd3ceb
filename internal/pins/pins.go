// internal/pins/pins.go

// Package pins describes the pins of the board and tracks the mode each one
// was last put in. The electrical side is behind the Board interface.
package pins

import (
	"fmt"
	"sync/atomic"

	"github.com/tamzrod/ino-console/internal/debug"
)

type Kind int

const (
	Digital Kind = iota
	DigitalPWM
	Analog
)

type Mode int32

const (
	Output Mode = iota
	Input
	InputPullup
)

func (m Mode) String() string {
	switch m {
	case Output:
		return "OUTPUT"
	case Input:
		return "INPUT"
	case InputPullup:
		return "INPUT_PULLUP"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

type Level int

const (
	Low Level = iota
	High
)

// Status is the outcome of a checked pin operation.
type Status int

const (
	Good Status = iota
	BadPinMode
	BadPinKind
	BadAnalogWriteValue
)

// Range accepted by AnalogWrite, inclusive.
const (
	AnalogWriteMin = 0
	AnalogWriteMax = 255
)

// Analog pin numbers.
const (
	A0 = 14 + iota
	A1
	A2
	A3
	A4
	A5
)

// Pin is one entry of the pin table.
type Pin struct {
	Number int
	Name   string
	Kind   Kind
	index  int
}

var table = [...]Pin{
	{0, "0", Digital, 0},
	{1, "1", Digital, 1},
	{2, "2", Digital, 2},
	{3, "3", DigitalPWM, 3},
	{4, "4", Digital, 4},
	{5, "5", DigitalPWM, 5},
	{6, "6", DigitalPWM, 6},
	{7, "7", Digital, 7},
	{8, "8", Digital, 8},
	{9, "9", Digital, 9},
	{10, "10", DigitalPWM, 10},
	{11, "11", DigitalPWM, 11},
	{12, "12", Digital, 12},
	{13, "13", Digital, 13},
	{A0, "A0", Analog, 14},
	{A1, "A1", Analog, 15},
	{A2, "A2", Analog, 16},
	{A3, "A3", Analog, 17},
	{A4, "A4", Analog, 18},
	{A5, "A5", Analog, 19},
}

// Count is the number of pins in the table.
const Count = len(table)

// All returns the pin table in order.
func All() []Pin { return table[:] }

// ByName finds a pin by its console name ("13", "A0").
func ByName(name string) (Pin, bool) {
	for _, p := range table {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

func ByNumber(n int) (Pin, bool) {
	if n < 0 || n >= Count {
		return Pin{}, false
	}
	return table[n], true
}

// MustNumber is ByNumber for pin numbers fixed in code. An unknown number is
// a defect in the caller.
func MustNumber(n int) Pin {
	p, ok := ByNumber(n)
	if !ok {
		debug.Unreachable(fmt.Sprintf("pins: no pin %d", n))
	}
	return p
}

// Board performs the electrical operations. Pins are passed by number.
type Board interface {
	SetMode(pin int, m Mode) error
	DigitalRead(pin int) (Level, error)
	DigitalWrite(pin int, l Level) error
	AnalogRead(pin int) (int, error)
	AnalogWrite(pin int, value int) error
}

// Bank checks operations against the pin table and the tracked modes before
// passing them to the board. Mode tracking is atomic per pin; code running
// outside the console loop should still only drive pins of its own.
type Bank struct {
	board Board
	modes [Count]atomic.Int32
}

// NewBank returns a bank with every pin tracked as Output. The board is not
// touched.
func NewBank(b Board) *Bank {
	k := &Bank{board: b}
	for i := range k.modes {
		k.modes[i].Store(int32(Output))
	}
	return k
}

func (k *Bank) Board() Board { return k.board }

func (k *Bank) SetMode(p Pin, m Mode) error {
	switch m {
	case Input, Output, InputPullup:
	default:
		debug.Unreachable("pins: invalid mode")
	}
	k.modes[p.index].Store(int32(m))
	return k.board.SetMode(p.Number, m)
}

func (k *Bank) Mode(p Pin) Mode {
	return Mode(k.modes[p.index].Load())
}

func (k *Bank) DigitalRead(p Pin) (Level, error) {
	return k.board.DigitalRead(p.Number)
}

// DigitalWrite requires the pin to be in Output mode.
func (k *Bank) DigitalWrite(p Pin, l Level) (Status, error) {
	if k.Mode(p) != Output {
		return BadPinMode, nil
	}
	return Good, k.board.DigitalWrite(p.Number, l)
}

// AnalogRead requires an analog pin that is not in Output mode.
func (k *Bank) AnalogRead(p Pin) (int, Status, error) {
	if p.Kind != Analog {
		return -1, BadPinKind, nil
	}
	if k.Mode(p) == Output {
		return -1, BadPinMode, nil
	}
	v, err := k.board.AnalogRead(p.Number)
	return v, Good, err
}

// AnalogWrite requires a PWM pin in Output mode and a value in
// [AnalogWriteMin, AnalogWriteMax].
func (k *Bank) AnalogWrite(p Pin, value int) (Status, error) {
	if p.Kind != DigitalPWM {
		return BadPinKind, nil
	}
	if k.Mode(p) != Output {
		return BadPinMode, nil
	}
	if value < AnalogWriteMin || value > AnalogWriteMax {
		return BadAnalogWriteValue, nil
	}
	return Good, k.board.AnalogWrite(p.Number, value)
}
