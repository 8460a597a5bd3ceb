// cmd/inoconsole/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	pty "github.com/aymanbagabas/go-pty"
	"github.com/goburrow/serial"

	"github.com/tamzrod/ino-console/internal/board/modbus"
	"github.com/tamzrod/ino-console/internal/board/sim"
	"github.com/tamzrod/ino-console/internal/checkengine"
	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/commands"
	"github.com/tamzrod/ino-console/internal/config"
	"github.com/tamzrod/ino-console/internal/console"
	"github.com/tamzrod/ino-console/internal/logs"
	"github.com/tamzrod/ino-console/internal/pins"
	"github.com/tamzrod/ino-console/internal/stepper"
)

func main() {
	if len(os.Args) > 2 {
		log.Fatal("usage: inoconsole [config.yaml]")
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if len(os.Args) == 2 {
		var err error
		cfg, err = config.Load(os.Args[1])
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger, closeLog, err := logs.New(logs.FromConfig(cfg.Log))
	if err != nil {
		log.Fatalf("log setup failed: %v", err)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("inoconsole stopped", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Board + pins
	// --------------------

	board, closeBoard, err := openBoard(cfg.Board)
	if err != nil {
		return err
	}
	defer closeBoard()
	logger.Info("board ready", "driver", cfg.Board.Driver)

	bank := pins.NewBank(board)

	var wires [4]int
	copy(wires[:], cfg.Stepper.Pins)
	motor, err := stepper.New(bank, stepper.Config{
		Steps:     cfg.Stepper.Steps,
		Pins:      wires,
		StepDelay: cfg.Stepper.StepDelay(),
	})
	if err != nil {
		return err
	}

	// --------------------
	// Console transport
	// --------------------

	rw, retry, closeConsole, err := openTransport(cfg.Console, logger)
	if err != nil {
		return err
	}
	defer closeConsole()

	// A blocked read only returns once the transport is closed.
	go func() {
		<-ctx.Done()
		closeConsole()
	}()

	// --------------------
	// Commands + loop
	// --------------------

	reg, err := commands.Registry(&commands.Env{
		Out:          rw,
		Pins:         bank,
		Window:       motor,
		Log:          logger.With("component", "commands"),
		HeadlightPin: *cfg.Headlights.Pin,
		SwitchPin:    *cfg.CheckEngine.SwitchPin,
		LampPin:      *cfg.CheckEngine.LampPin,
	})
	if err != nil {
		return err
	}
	logger.Debug("registry built", "commands", reg.Len(), "image_bytes", reg.Image().Size(), "crc", reg.Image().Checksum())

	if *cfg.CheckEngine.Enabled {
		w := checkengine.New(board, checkengine.Config{
			SwitchPin: *cfg.CheckEngine.SwitchPin,
			LampPin:   *cfg.CheckEngine.LampPin,
			Interval:  cfg.CheckEngine.Interval(),
		}, logger.With("component", "checkengine"))
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("checkengine watcher stopped", "err", err)
			}
		}()
	}

	disp := command.NewDispatcher(reg, rw, logger.With("component", "dispatch"))
	con := console.New(rw, rw, disp, console.Config{
		LineBuffer:  cfg.Console.LineBuffer,
		TokenBuffer: cfg.Console.TokenBuffer,
		Prompt:      cfg.Console.Prompt,
		Banner:      "Initializing...",
	}, logger.With("component", "console"))
	con.SetRetry(retry)

	err = con.Run(ctx)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		logger.Info("shutting down")
		return nil
	}
	return err
}

func openBoard(cfg config.BoardConfig) (pins.Board, func() error, error) {
	switch cfg.Driver {
	case config.DriverModbus:
		m := cfg.Modbus
		b, err := modbus.Open(modbus.Config{
			Port:     m.Port,
			BaudRate: m.Baud,
			DataBits: m.DataBits,
			StopBits: m.StopBits,
			Parity:   m.Parity,
			SlaveID:  m.UnitID,
			Timeout:  m.Timeout(),
			Map: modbus.Map{
				Coils:          m.Coils,
				DiscreteInputs: m.DiscreteInputs,
				InputRegisters: m.InputRegisters,
				PWMRegisters:   m.PWMRegisters,
				ModeRegisters:  m.ModeRegisters,
			},
		})
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		return sim.New(), func() error { return nil }, nil
	}
}

type stdio struct {
	io.Reader
	io.Writer
}

// openTransport returns the console stream, the transient read error
// predicate for it, and its close function.
func openTransport(cfg config.ConsoleConfig, logger *slog.Logger) (io.ReadWriter, func(error) bool, func() error, error) {
	switch cfg.Transport {
	case config.TransportSerial:
		port, err := serial.Open(&serial.Config{
			Address:  cfg.Port,
			BaudRate: cfg.Baud,
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  cfg.Timeout(),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("console: open %s: %w", cfg.Port, err)
		}
		logger.Info("console on serial port", "port", cfg.Port, "baud", cfg.Baud)
		retry := func(err error) bool { return errors.Is(err, serial.ErrTimeout) }
		return port, retry, onceCloser(port), nil

	case config.TransportPTY:
		p, err := pty.New()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("console: open pty: %w", err)
		}
		logger.Info("console on pseudo-terminal", "tty", p.Name())
		fmt.Fprintf(os.Stderr, "inoconsole: attach a terminal to %s\n", p.Name())
		return p, nil, onceCloser(p), nil

	default:
		return stdio{os.Stdin, os.Stdout}, nil, func() error { return nil }, nil
	}
}

func onceCloser(c io.Closer) func() error {
	var (
		once sync.Once
		err  error
	)
	return func() error {
		once.Do(func() { err = c.Close() })
		return err
	}
}
