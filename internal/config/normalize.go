// internal/config/normalize.go
package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultBaud        = 115200
	DefaultLineBuffer  = 128
	DefaultTokenBuffer = 10
	DefaultPrompt      = "ino> "

	DefaultModbusBaud = 9600

	DefaultSteps       = 100
	DefaultStepDelayMs = 5

	DefaultSwitchPin  = 2
	DefaultLampPin    = 10
	DefaultIntervalMs = 50

	DefaultHeadlightPin = 9
)

var DefaultStepperPins = []int{4, 7, 5, 6}

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// CONSOLE
	// ------------------------------------------------------------

	c := &cfg.Console
	if c.Transport == "" {
		c.Transport = TransportStdio
	}
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = 100
	}
	if c.LineBuffer == 0 {
		c.LineBuffer = DefaultLineBuffer
	}
	if c.TokenBuffer == 0 {
		c.TokenBuffer = DefaultTokenBuffer
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}

	// ------------------------------------------------------------
	// BOARD
	// ------------------------------------------------------------

	if cfg.Board.Driver == "" {
		cfg.Board.Driver = DriverSim
	}
	m := &cfg.Board.Modbus
	if m.Baud == 0 {
		m.Baud = DefaultModbusBaud
	}
	if m.DataBits == 0 {
		m.DataBits = 8
	}
	if m.StopBits == 0 {
		m.StopBits = 1
	}
	m.Parity = strings.ToUpper(m.Parity)
	if m.Parity == "" {
		m.Parity = "N"
	}
	if m.UnitID == 0 {
		m.UnitID = 1
	}
	if m.TimeoutMs == 0 {
		m.TimeoutMs = 1000
	}

	// ------------------------------------------------------------
	// VEHICLE
	// ------------------------------------------------------------

	s := &cfg.Stepper
	if s.Steps == 0 {
		s.Steps = DefaultSteps
	}
	if len(s.Pins) == 0 {
		s.Pins = append([]int(nil), DefaultStepperPins...)
	}
	if s.StepDelayMs == 0 {
		s.StepDelayMs = DefaultStepDelayMs
	}

	e := &cfg.CheckEngine
	if e.Enabled == nil {
		e.Enabled = ptr(true)
	}
	if e.SwitchPin == nil {
		e.SwitchPin = ptr(DefaultSwitchPin)
	}
	if e.LampPin == nil {
		e.LampPin = ptr(DefaultLampPin)
	}
	if e.IntervalMs == 0 {
		e.IntervalMs = DefaultIntervalMs
	}

	if cfg.Headlights.Pin == nil {
		cfg.Headlights.Pin = ptr(DefaultHeadlightPin)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func ptr[T any](v T) *T { return &v }
