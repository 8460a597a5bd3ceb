// internal/stepper/stepper.go

// Package stepper drives a 4-wire stepper motor in full steps.
package stepper

import (
	"fmt"
	"time"

	"github.com/tamzrod/ino-console/internal/pins"
)

// Driver is the pin access the motor needs. *pins.Bank implements it.
type Driver interface {
	SetMode(p pins.Pin, m pins.Mode) error
	DigitalWrite(p pins.Pin, l pins.Level) (pins.Status, error)
}

// Full-step sequence, one bit per coil wire in pin order.
var sequence = [4]uint8{
	0b1010,
	0b0110,
	0b0101,
	0b1001,
}

type Config struct {
	Steps     int
	Pins      [4]int
	StepDelay time.Duration
}

// Motor tracks an absolute position in [0, Steps). Position is assumed to
// be 0 at Begin; there is no homing switch.
type Motor struct {
	drv      Driver
	wires    [4]pins.Pin
	steps    int
	delay    time.Duration
	position int
	phase    int
	started  bool

	sleep func(time.Duration)
}

func New(drv Driver, cfg Config) (*Motor, error) {
	if cfg.Steps < 1 {
		return nil, fmt.Errorf("stepper: steps must be positive, got %d", cfg.Steps)
	}
	m := &Motor{
		drv:   drv,
		steps: cfg.Steps,
		delay: cfg.StepDelay,
		sleep: time.Sleep,
	}
	for i, n := range cfg.Pins {
		p, ok := pins.ByNumber(n)
		if !ok || p.Kind == pins.Analog {
			return nil, fmt.Errorf("stepper: pin %d is not a digital pin", n)
		}
		m.wires[i] = p
	}
	return m, nil
}

// Begin puts the coil pins in output mode and energizes the first phase.
// Later calls do nothing.
func (m *Motor) Begin() error {
	if m.started {
		return nil
	}
	for _, p := range m.wires {
		if err := m.drv.SetMode(p, pins.Output); err != nil {
			return fmt.Errorf("stepper: begin: %w", err)
		}
	}
	if err := m.energize(m.phase); err != nil {
		return err
	}
	m.started = true
	return nil
}

func (m *Motor) Started() bool { return m.started }
func (m *Motor) Position() int { return m.position }
func (m *Motor) Steps() int    { return m.steps }

// SetPosition steps one step at a time toward p.
func (m *Motor) SetPosition(p int) error {
	if p < 0 || p >= m.steps {
		return fmt.Errorf("stepper: position %d out of range [0, %d)", p, m.steps)
	}
	if !m.started {
		if err := m.Begin(); err != nil {
			return err
		}
	}
	for m.position != p {
		dir := 1
		if p < m.position {
			dir = -1
		}
		next := (m.phase + dir + len(sequence)) % len(sequence)
		if err := m.energize(next); err != nil {
			return err
		}
		m.phase = next
		m.position += dir
		if m.delay > 0 {
			m.sleep(m.delay)
		}
	}
	return nil
}

func (m *Motor) energize(phase int) error {
	bits := sequence[phase]
	for i, p := range m.wires {
		l := pins.Low
		if bits&(0b1000>>i) != 0 {
			l = pins.High
		}
		st, err := m.drv.DigitalWrite(p, l)
		if err != nil {
			return fmt.Errorf("stepper: pin %s: %w", p.Name, err)
		}
		if st != pins.Good {
			return fmt.Errorf("stepper: pin %s is not in OUTPUT mode", p.Name)
		}
	}
	return nil
}
