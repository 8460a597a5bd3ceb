// internal/checkengine/watcher.go

// Package checkengine mirrors the check-engine switch on the lamp.
//
// The watcher runs beside the console loop. It talks to the board directly
// and owns its two pins; it never reads or writes the console's pin-mode
// tracking.
package checkengine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tamzrod/ino-console/internal/pins"
)

const (
	DefaultSwitchPin = 2
	DefaultLampPin   = 10
)

type Config struct {
	SwitchPin int
	LampPin   int
	Interval  time.Duration
}

type Watcher struct {
	board pins.Board
	cfg   Config
	log   *slog.Logger

	last   pins.Level
	primed bool
}

func New(b pins.Board, cfg Config, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{board: b, cfg: cfg, log: log}
}

// Run configures the two pins and polls the switch on every tick until ctx
// is done. Poll errors are logged and the next tick tries again.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.board.SetMode(w.cfg.SwitchPin, pins.Input); err != nil {
		return err
	}
	if err := w.board.SetMode(w.cfg.LampPin, pins.Output); err != nil {
		return err
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Poll(); err != nil {
				w.log.Warn("checkengine poll failed", "err", err)
			}
		}
	}
}

// Poll reads the switch once and drives the lamp if the switch changed since
// the last poll. It reports whether the lamp was written.
func (w *Watcher) Poll() (bool, error) {
	l, err := w.board.DigitalRead(w.cfg.SwitchPin)
	if err != nil {
		return false, err
	}
	if w.primed && l == w.last {
		return false, nil
	}
	if err := w.board.DigitalWrite(w.cfg.LampPin, l); err != nil {
		return false, err
	}
	w.last, w.primed = l, true
	w.log.Info("checkengine switch", "level", int(l))
	return true, nil
}
