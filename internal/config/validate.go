// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Highest digital pin number; A0.. follow it.
const maxDigitalPin = 13

// Smallest step count that still fits the window's travel.
const minSteps = 51

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values are accepted wherever Normalize supplies a default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// CONSOLE
	// ------------------------------------------------------------

	c := cfg.Console
	switch c.Transport {
	case "", TransportStdio, TransportPTY:
	case TransportSerial:
		if c.Port == "" {
			return fmt.Errorf("console: transport %q requires port", c.Transport)
		}
	default:
		return fmt.Errorf("console: unknown transport %q", c.Transport)
	}
	if c.Baud < 0 {
		return fmt.Errorf("console: baud must not be negative")
	}
	if c.TimeoutMs < 0 {
		return fmt.Errorf("console: timeout_ms must not be negative")
	}
	if c.LineBuffer != 0 && c.LineBuffer < 2 {
		return fmt.Errorf("console: line_buffer must be at least 2, got %d", c.LineBuffer)
	}
	if c.TokenBuffer < 0 {
		return fmt.Errorf("console: token_buffer must not be negative")
	}

	// ------------------------------------------------------------
	// BOARD
	// ------------------------------------------------------------

	switch cfg.Board.Driver {
	case "", DriverSim:
	case DriverModbus:
		m := cfg.Board.Modbus
		if m.Port == "" {
			return fmt.Errorf("board: driver %q requires modbus.port", DriverModbus)
		}
		if c.Transport == TransportSerial && c.Port == m.Port {
			return fmt.Errorf("board: modbus.port %q is also the console port", m.Port)
		}
		switch strings.ToUpper(m.Parity) {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("board: modbus.parity must be N, E or O, got %q", m.Parity)
		}
		if m.DataBits != 0 && (m.DataBits < 5 || m.DataBits > 8) {
			return fmt.Errorf("board: modbus.data_bits must be 5..8, got %d", m.DataBits)
		}
		if m.StopBits != 0 && m.StopBits != 1 && m.StopBits != 2 {
			return fmt.Errorf("board: modbus.stop_bits must be 1 or 2, got %d", m.StopBits)
		}
		if m.UnitID > 247 {
			return fmt.Errorf("board: modbus.unit_id must be 1..247, got %d", m.UnitID)
		}
	default:
		return fmt.Errorf("board: unknown driver %q", cfg.Board.Driver)
	}

	// ------------------------------------------------------------
	// VEHICLE PINS (must not overlap)
	// ------------------------------------------------------------

	s := cfg.Stepper
	if s.Steps != 0 && s.Steps < minSteps {
		return fmt.Errorf("stepper: steps must be at least %d, got %d", minSteps, s.Steps)
	}
	if s.StepDelayMs < 0 {
		return fmt.Errorf("stepper: step_delay_ms must not be negative")
	}
	if len(s.Pins) != 0 && len(s.Pins) != 4 {
		return fmt.Errorf("stepper: exactly 4 pins required, got %d", len(s.Pins))
	}
	if cfg.CheckEngine.IntervalMs < 0 {
		return fmt.Errorf("checkengine: interval_ms must not be negative")
	}

	owner := make(map[int]string)
	claim := func(pin int, what string) error {
		if pin < 0 || pin > maxDigitalPin {
			return fmt.Errorf("%s: pin %d is not a digital pin", what, pin)
		}
		if prev, exists := owner[pin]; exists {
			return fmt.Errorf("pin collision: pin %d used by %s and %s", pin, prev, what)
		}
		owner[pin] = what
		return nil
	}

	stepperPins := s.Pins
	if len(stepperPins) == 0 {
		stepperPins = DefaultStepperPins
	}
	for _, p := range stepperPins {
		if err := claim(p, "stepper"); err != nil {
			return err
		}
	}
	if err := claim(orDefault(cfg.Headlights.Pin, DefaultHeadlightPin), "headlights"); err != nil {
		return err
	}
	if err := claim(orDefault(cfg.CheckEngine.SwitchPin, DefaultSwitchPin), "checkengine switch"); err != nil {
		return err
	}
	if err := claim(orDefault(cfg.CheckEngine.LampPin, DefaultLampPin), "checkengine lamp"); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}

	return nil
}

func orDefault(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
