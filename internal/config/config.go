// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Console     ConsoleConfig     `yaml:"console"`
	Board       BoardConfig       `yaml:"board"`
	Stepper     StepperConfig     `yaml:"stepper"`
	CheckEngine CheckEngineConfig `yaml:"checkengine"`
	Headlights  HeadlightsConfig  `yaml:"headlights"`
	Log         LogConfig         `yaml:"log"`
}

// ---- CONSOLE ----

const (
	TransportStdio  = "stdio"
	TransportPTY    = "pty"
	TransportSerial = "serial"
)

type ConsoleConfig struct {
	Transport string `yaml:"transport"` // stdio | pty | serial
	Port      string `yaml:"port"`      // serial only
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"` // serial read timeout; timeouts are retried

	LineBuffer  int    `yaml:"line_buffer"` // bytes, terminator included
	TokenBuffer int    `yaml:"token_buffer"`
	Prompt      string `yaml:"prompt"`
}

// ---- BOARD ----

const (
	DriverSim    = "sim"
	DriverModbus = "modbus"
)

type BoardConfig struct {
	Driver string       `yaml:"driver"` // sim | modbus
	Modbus ModbusConfig `yaml:"modbus"`
}

type ModbusConfig struct {
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // N | E | O
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Table base addresses; pin n is at base + n.
	Coils          uint16 `yaml:"coils"`
	DiscreteInputs uint16 `yaml:"discrete_inputs"`
	InputRegisters uint16 `yaml:"input_registers"` // analog input k (pin A0+k) at base + k
	PWMRegisters   uint16 `yaml:"pwm_registers"`
	ModeRegisters  uint16 `yaml:"mode_registers"`
}

// ---- VEHICLE ----

type StepperConfig struct {
	Steps       int   `yaml:"steps"`
	Pins        []int `yaml:"pins"`
	StepDelayMs int   `yaml:"step_delay_ms"`
}

type CheckEngineConfig struct {
	Enabled    *bool `yaml:"enabled"`
	SwitchPin  *int  `yaml:"switch_pin"`
	LampPin    *int  `yaml:"lamp_pin"`
	IntervalMs int   `yaml:"interval_ms"`
}

type HeadlightsConfig struct {
	Pin *int `yaml:"pin"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // optional JSON log file
}

// Load reads a YAML configuration file. Unknown keys are rejected.
// The result still needs Validate and Normalize.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default is the configuration used when no file is given: stdio console,
// simulated board.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (c ConsoleConfig) Timeout() time.Duration      { return ms(c.TimeoutMs) }
func (c ModbusConfig) Timeout() time.Duration       { return ms(c.TimeoutMs) }
func (c StepperConfig) StepDelay() time.Duration    { return ms(c.StepDelayMs) }
func (c CheckEngineConfig) Interval() time.Duration { return ms(c.IntervalMs) }
