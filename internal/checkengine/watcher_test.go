// internal/checkengine/watcher_test.go
package checkengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/ino-console/internal/board/sim"
	"github.com/tamzrod/ino-console/internal/pins"
)

func TestPoll_MirrorsOnChange(t *testing.T) {
	b := sim.New()
	w := New(b, Config{SwitchPin: DefaultSwitchPin, LampPin: DefaultLampPin}, nil)

	wrote, err := w.Poll()
	if err != nil || !wrote {
		t.Fatalf("first poll: %v %v", wrote, err)
	}
	if wrote, _ := w.Poll(); wrote {
		t.Fatalf("unchanged switch rewrote the lamp")
	}

	b.SetInput(DefaultSwitchPin, pins.High)
	if wrote, _ := w.Poll(); !wrote {
		t.Fatalf("change not mirrored")
	}
	if l, _ := b.DigitalRead(DefaultLampPin); l != pins.High {
		t.Fatalf("lamp %v", l)
	}
}

type failingBoard struct{ *sim.Board }

func (failingBoard) DigitalRead(int) (pins.Level, error) { return pins.Low, errors.New("bus") }

func TestPoll_ReadError(t *testing.T) {
	w := New(failingBoard{sim.New()}, Config{SwitchPin: 2, LampPin: 10}, nil)
	if _, err := w.Poll(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRun_ConfiguresPinsAndStops(t *testing.T) {
	b := sim.New()
	b.SetInput(DefaultSwitchPin, pins.High)
	w := New(b, Config{SwitchPin: DefaultSwitchPin, LampPin: DefaultLampPin, Interval: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if l, _ := b.DigitalRead(DefaultLampPin); l == pins.High {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("lamp never followed the switch")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, _ := b.Mode(DefaultSwitchPin); m != pins.Input {
		t.Fatalf("switch mode %v", m)
	}
	if m, _ := b.Mode(DefaultLampPin); m != pins.Output {
		t.Fatalf("lamp mode %v", m)
	}
}
