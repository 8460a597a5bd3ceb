// internal/console/console.go
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/fixed"
)

// ErrHalted is returned by Run after an internal invariant failed. The
// console reports the failure and stops; it does not try to continue.
var ErrHalted = errors.New("console: halted")

type Config struct {
	LineBuffer  int
	TokenBuffer int
	Prompt      string
	Banner      string
}

// Console is the read, tokenize, dispatch loop. One command runs to
// completion before the next line is read.
type Console struct {
	lines  *LineReader
	out    io.Writer
	disp   *command.Dispatcher
	tokens *fixed.Array[string]
	cfg    Config
	log    *slog.Logger
}

func New(in io.Reader, out io.Writer, disp *command.Dispatcher, cfg Config, log *slog.Logger) *Console {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.TokenBuffer < 1 {
		cfg.TokenBuffer = 1
	}
	return &Console{
		lines:  NewLineReader(in, cfg.LineBuffer),
		out:    out,
		disp:   disp,
		tokens: fixed.NewArray[string](cfg.TokenBuffer),
		cfg:    cfg,
		log:    log,
	}
}

// SetRetry installs the transient-error predicate of the line reader.
func (c *Console) SetRetry(retry func(error) bool) { c.lines.Retry = retry }

// Run prints the banner and serves lines until the input ends (nil), the
// context is cancelled (ctx.Err()) or an invariant fails (ErrHalted).
// A blocked read is not interrupted by ctx; close the input to unblock it.
func (c *Console) Run(ctx context.Context) error {
	if c.cfg.Banner != "" {
		command.Println(c.out, c.cfg.Banner)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.Step()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			c.log.Info("console input closed")
			return nil
		case errors.Is(err, ErrHalted):
			return err
		default:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("console: read: %w", err)
		}
	}
}

// Step serves one line: prompt, read, tokenize, dispatch. Overlong lines and
// token overflows are reported on the console and are not errors.
func (c *Console) Step() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		inv, ok := r.(debug.Invariant)
		if !ok {
			panic(r)
		}
		command.Println(c.out, "Assertion: \"", string(inv), "\" failed. Halting.")
		c.log.Error("invariant failed", "err", inv)
		err = ErrHalted
	}()

	io.WriteString(c.out, c.cfg.Prompt)

	line, err := c.lines.ReadLine()
	switch {
	case errors.Is(err, ErrLineTooLong):
		command.Error(c.out, "Command too long.")
		return nil
	case err != nil:
		return err
	}

	if err := Tokenize(line, c.tokens); err != nil {
		command.Error(c.out, "Too many tokens in command.")
		return nil
	}

	status := c.disp.Invoke(c.tokens.Slice())
	if status > 0 {
		command.Println(c.out, status)
	}
	return nil
}
