// internal/logs/logger.go

// Package logs builds the program's logger. Logs never go to the console
// stream: the terminal handler writes to stderr, a JSON handler to an
// optional file, and the systemd journal is used when running as a service.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"github.com/tamzrod/ino-console/internal/config"
)

type Options struct {
	Level string
	File  string

	// Terminal receives the text handler's output; nil disables it.
	Terminal io.Writer
	// Journal adds the systemd journal handler.
	Journal bool
}

// FromConfig returns options for cfg, writing to stderr unless the process
// runs as a systemd service.
func FromConfig(cfg config.LogConfig) Options {
	o := Options{Level: cfg.Level, File: cfg.File, Terminal: os.Stderr}
	if IsSystemdService() {
		o.Terminal = nil
		o.Journal = true
	}
	return o
}

// New builds the fan-out logger. The returned close function flushes and
// closes the log file, if any.
func New(o Options) (*slog.Logger, func() error, error) {
	var level slog.Level
	if o.Level != "" {
		if err := level.UnmarshalText([]byte(o.Level)); err != nil {
			return nil, nil, fmt.Errorf("logs: %w", err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	closeFn := func() error { return nil }

	if o.Terminal != nil {
		handlers = append(handlers, slog.NewTextHandler(o.Terminal, opts))
	}

	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logs: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closeFn = f.Close
	}

	if o.Journal {
		h, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err == nil {
			handlers = append(handlers, h)
		} else if len(handlers) > 0 {
			slog.New(slogmulti.Fanout(handlers...)).Warn("systemd journal unavailable", "err", err)
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// Journal field names are upper case letters, digits and underscores.
func toJournalKey(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}

// IsSystemdService reports whether the process runs in a systemd service
// cgroup.
func IsSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(strings.TrimSpace(string(content)), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(parts[2]), ".service")
}
