// internal/pins/pins_test.go
package pins

import (
	"errors"
	"testing"

	"github.com/tamzrod/ino-console/internal/debug"
)

// recordingBoard is a minimal Board that remembers the last call.
type recordingBoard struct {
	modes  map[int]Mode
	levels map[int]Level
	analog map[int]int
	writes int
	err    error
}

func newRecordingBoard() *recordingBoard {
	return &recordingBoard{
		modes:  map[int]Mode{},
		levels: map[int]Level{},
		analog: map[int]int{},
	}
}

func (b *recordingBoard) SetMode(pin int, m Mode) error { b.modes[pin] = m; return b.err }
func (b *recordingBoard) DigitalRead(pin int) (Level, error) {
	return b.levels[pin], b.err
}
func (b *recordingBoard) DigitalWrite(pin int, l Level) error {
	b.writes++
	b.levels[pin] = l
	return b.err
}
func (b *recordingBoard) AnalogRead(pin int) (int, error) { return b.analog[pin], b.err }
func (b *recordingBoard) AnalogWrite(pin int, v int) error {
	b.writes++
	b.analog[pin] = v
	return b.err
}

func TestByName(t *testing.T) {
	p, ok := ByName("A3")
	if !ok || p.Number != A3 || p.Kind != Analog {
		t.Fatalf("A3: got %+v ok=%v", p, ok)
	}
	p, ok = ByName("11")
	if !ok || p.Kind != DigitalPWM {
		t.Fatalf("11: got %+v ok=%v", p, ok)
	}
	for _, bad := range []string{"", "14", "A6", "a0", " 1"} {
		if _, ok := ByName(bad); ok {
			t.Fatalf("%q should not name a pin", bad)
		}
	}
	if len(All()) != Count || Count != 20 {
		t.Fatalf("unexpected table size %d", Count)
	}
}

func TestByNumber(t *testing.T) {
	for _, p := range All() {
		q, ok := ByNumber(p.Number)
		if !ok || q != p {
			t.Fatalf("pin %d: got %+v", p.Number, q)
		}
	}
	if _, ok := ByNumber(Count); ok {
		t.Fatalf("%d should not be a pin", Count)
	}
}

func TestMustNumber_PanicsOnUnknownPin(t *testing.T) {
	defer func() {
		if _, ok := recover().(debug.Invariant); !ok {
			t.Fatalf("expected an invariant panic")
		}
	}()
	MustNumber(-1)
}

func TestBank_DefaultModeIsOutput(t *testing.T) {
	b := newRecordingBoard()
	k := NewBank(b)
	for _, p := range All() {
		if k.Mode(p) != Output {
			t.Fatalf("pin %s: default mode %v", p.Name, k.Mode(p))
		}
	}
	if len(b.modes) != 0 {
		t.Fatalf("NewBank must not touch the board")
	}
}

func TestBank_DigitalWriteRequiresOutput(t *testing.T) {
	b := newRecordingBoard()
	k := NewBank(b)
	p := MustNumber(13)

	if err := k.SetMode(p, Input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.modes[13] != Input {
		t.Fatalf("board mode not set")
	}
	st, err := k.DigitalWrite(p, High)
	if err != nil || st != BadPinMode {
		t.Fatalf("got %v %v, want BadPinMode", st, err)
	}
	if b.writes != 0 {
		t.Fatalf("rejected write reached the board")
	}

	k.SetMode(p, Output)
	st, err = k.DigitalWrite(p, High)
	if err != nil || st != Good || b.levels[13] != High {
		t.Fatalf("got %v %v level=%v", st, err, b.levels[13])
	}
}

func TestBank_AnalogRead(t *testing.T) {
	b := newRecordingBoard()
	k := NewBank(b)
	b.analog[A0] = 512

	if _, st, _ := k.AnalogRead(MustNumber(3)); st != BadPinKind {
		t.Fatalf("digital pin: got %v", st)
	}
	if _, st, _ := k.AnalogRead(MustNumber(A0)); st != BadPinMode {
		t.Fatalf("output pin: got %v", st)
	}
	k.SetMode(MustNumber(A0), InputPullup)
	v, st, err := k.AnalogRead(MustNumber(A0))
	if err != nil || st != Good || v != 512 {
		t.Fatalf("got %d %v %v", v, st, err)
	}
}

func TestBank_AnalogWrite(t *testing.T) {
	b := newRecordingBoard()
	k := NewBank(b)

	cases := []struct {
		pin   int
		value int
		want  Status
	}{
		{13, 10, BadPinKind},
		{A0, 10, BadPinKind},
		{9, 10, BadPinKind},
		{11, -1, BadAnalogWriteValue},
		{11, 256, BadAnalogWriteValue},
		{11, 0, Good},
		{11, 255, Good},
	}
	for _, c := range cases {
		st, err := k.AnalogWrite(MustNumber(c.pin), c.value)
		if err != nil || st != c.want {
			t.Fatalf("pin %d value %d: got %v %v, want %v", c.pin, c.value, st, err, c.want)
		}
	}

	k.SetMode(MustNumber(11), Input)
	if st, _ := k.AnalogWrite(MustNumber(11), 5); st != BadPinMode {
		t.Fatalf("input pin: got %v", st)
	}
}

func TestBank_BoardErrorPassesThrough(t *testing.T) {
	b := newRecordingBoard()
	b.err = errors.New("bus down")
	k := NewBank(b)

	st, err := k.DigitalWrite(MustNumber(4), Low)
	if st != Good || err == nil {
		t.Fatalf("got %v %v", st, err)
	}
}

func TestMode_String(t *testing.T) {
	if Input.String() != "INPUT" || Output.String() != "OUTPUT" || InputPullup.String() != "INPUT_PULLUP" {
		t.Fatalf("unexpected mode names")
	}
}
