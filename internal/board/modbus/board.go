// internal/board/modbus/board.go

// Package modbus drives the pins of a remote I/O module over Modbus RTU.
//
// Pin n maps to:
//
//	coil            Coils + n           digital output
//	discrete input  DiscreteInputs + n  digital level
//	input register  InputRegisters + k  analog input k (pin A0 + k)
//	holding reg.    PWMRegisters + n    PWM duty
//	holding reg.    ModeRegisters + n   pin mode (0 INPUT, 1 OUTPUT, 2 INPUT_PULLUP)
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/ino-console/internal/pins"
)

// Map holds the base address of each table.
type Map struct {
	Coils          uint16
	DiscreteInputs uint16
	InputRegisters uint16
	PWMRegisters   uint16
	ModeRegisters  uint16
}

type Config struct {
	Port     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	SlaveID  uint8
	Timeout  time.Duration
	Map      Map
}

// client is the part of modbus.Client the board uses.
type client interface {
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error)
	WriteSingleCoil(address, value uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// Board implements pins.Board. Requests are serialized; the check-engine
// watcher and the console share one bus.
type Board struct {
	mu      sync.Mutex
	handler *modbus.RTUClientHandler
	client  client
	m       Map
}

const coilOn = 0xFF00

// Open connects to the I/O module on cfg.Port.
func Open(cfg Config) (*Board, error) {
	if cfg.Port == "" {
		return nil, errors.New("board modbus: port required")
	}

	h := modbus.NewRTUClientHandler(cfg.Port)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.StopBits = cfg.StopBits
	h.Parity = cfg.Parity
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("board modbus: connect %s: %w", cfg.Port, err)
	}

	b := newBoard(modbus.NewClient(h), cfg.Map)
	b.handler = h
	return b, nil
}

func newBoard(c client, m Map) *Board {
	return &Board{client: c, m: m}
}

func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == nil {
		return nil
	}
	return b.handler.Close()
}

// ---- pins.Board ----

func (b *Board) SetMode(pin int, m pins.Mode) error {
	var code uint16
	switch m {
	case pins.Input:
		code = 0
	case pins.Output:
		code = 1
	case pins.InputPullup:
		code = 2
	default:
		return fmt.Errorf("board modbus: unknown mode %v", m)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.client.WriteSingleRegister(b.m.ModeRegisters+uint16(pin), code)
	return wrap("set mode", pin, err)
}

func (b *Board) DigitalRead(pin int) (pins.Level, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.client.ReadDiscreteInputs(b.m.DiscreteInputs+uint16(pin), 1)
	if err != nil {
		return pins.Low, wrap("digital read", pin, err)
	}
	if len(res) < 1 {
		return pins.Low, wrap("digital read", pin, errShort)
	}
	if res[0]&1 != 0 {
		return pins.High, nil
	}
	return pins.Low, nil
}

func (b *Board) DigitalWrite(pin int, l pins.Level) error {
	var v uint16
	if l == pins.High {
		v = coilOn
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.client.WriteSingleCoil(b.m.Coils+uint16(pin), v)
	return wrap("digital write", pin, err)
}

func (b *Board) AnalogRead(pin int) (int, error) {
	if pin < pins.A0 {
		return 0, fmt.Errorf("board modbus: pin %d has no analog input", pin)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.client.ReadInputRegisters(b.m.InputRegisters+uint16(pin-pins.A0), 1)
	if err != nil {
		return 0, wrap("analog read", pin, err)
	}
	if len(res) < 2 {
		return 0, wrap("analog read", pin, errShort)
	}
	return int(res[0])<<8 | int(res[1]), nil
}

func (b *Board) AnalogWrite(pin int, v int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.client.WriteSingleRegister(b.m.PWMRegisters+uint16(pin), uint16(v))
	return wrap("analog write", pin, err)
}

var errShort = errors.New("short response")

func wrap(op string, pin int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("board modbus: %s pin %d: %w", op, pin, err)
}
