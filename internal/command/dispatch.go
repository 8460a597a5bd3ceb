// internal/command/dispatch.go
package command

import (
	"io"
	"log/slog"
)

// Dispatcher matches the first token of a line against the registry and
// runs the command. It does not validate arguments; handlers do.
type Dispatcher struct {
	reg *Registry
	out io.Writer
	log *slog.Logger
}

func NewDispatcher(reg *Registry, out io.Writer, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{reg: reg, out: out, log: log}
}

// Invoke runs argv. A blank line succeeds without running anything.
func (d *Dispatcher) Invoke(argv []string) int {
	if len(argv) == 0 {
		return 0
	}

	cmd, ok := d.reg.Lookup(argv[0])
	if !ok {
		d.log.Debug("unknown command", "name", argv[0])
		return Error(d.out, "Unknown command '", argv[0], "'.")
	}

	status := cmd.Invoke(argv)
	d.log.Debug("command done", "name", argv[0], "args", len(argv)-1, "status", status)
	return status
}
