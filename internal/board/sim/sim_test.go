// internal/board/sim/sim_test.go
package sim

import (
	"testing"

	"github.com/tamzrod/ino-console/internal/pins"
)

var _ pins.Board = (*Board)(nil)

func TestBoard_WritesAreLogged(t *testing.T) {
	b := New()
	b.DigitalWrite(13, pins.High)
	b.AnalogWrite(9, 128)

	got := b.Writes()
	if len(got) != 2 {
		t.Fatalf("got %d writes", len(got))
	}
	if got[0] != (Write{Pin: 13, Value: 1}) || got[1] != (Write{Pin: 9, Analog: true, Value: 128}) {
		t.Fatalf("unexpected log %+v", got)
	}
	if l, _ := b.DigitalRead(13); l != pins.High {
		t.Fatalf("readback %v", l)
	}
}

func TestBoard_Inputs(t *testing.T) {
	b := New()
	b.SetInput(2, pins.High)
	b.SetAnalog(pins.A1, 700)

	if l, _ := b.DigitalRead(2); l != pins.High {
		t.Fatalf("digital %v", l)
	}
	if v, _ := b.AnalogRead(pins.A1); v != 700 {
		t.Fatalf("analog %d", v)
	}
	if len(b.Writes()) != 0 {
		t.Fatalf("inputs must not be logged as writes")
	}
}

func TestBoard_PullupReadsHigh(t *testing.T) {
	b := New()
	b.SetMode(7, pins.InputPullup)
	if l, _ := b.DigitalRead(7); l != pins.High {
		t.Fatalf("got %v", l)
	}
	if m, ok := b.Mode(7); !ok || m != pins.InputPullup {
		t.Fatalf("mode %v %v", m, ok)
	}
}

func TestBoard_RejectsUnknownPin(t *testing.T) {
	b := New()
	if err := b.DigitalWrite(pins.Count, pins.Low); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := b.AnalogRead(-1); err == nil {
		t.Fatalf("expected error")
	}
}
