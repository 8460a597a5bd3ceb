// internal/commands/vehicle.go
package commands

import (
	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/pins"
)

// Window positions, in motor steps. The window moves through the midpoint.
const (
	WindowClosed = 0
	WindowMid    = 25
	WindowOpen   = 50
)

func (e *Env) window(argv []string) int {
	if len(argv) > 2 {
		return command.Error(e.Out, "Command 'window' takes at most one argument")
	}
	if err := e.Window.Begin(); err != nil {
		e.Log.Warn("window begin", "err", err)
		return command.Error(e.Out, "Unable to move the window.")
	}

	pos := e.Window.Position()
	if len(argv) == 1 {
		switch pos {
		case WindowClosed:
			command.Println(e.Out, "CLOSED")
		case WindowOpen:
			command.Println(e.Out, "OPENED")
		default:
			command.Println(e.Out, pos)
		}
		return 0
	}

	var path [2]int
	switch {
	case oneOf(argv[1], "OPEN", "open"):
		if pos == WindowOpen {
			return 0
		}
		debug.Check(pos == WindowClosed, "commands: window neither open nor closed")
		path = [2]int{WindowMid, WindowOpen}
	case oneOf(argv[1], "CLOSE", "close"):
		if pos == WindowClosed {
			return 0
		}
		debug.Check(pos == WindowOpen, "commands: window neither open nor closed")
		path = [2]int{WindowMid, WindowClosed}
	default:
		return command.Error(e.Out, "Invalid argument to command 'window'.  Valid values are 'OPEN', 'open', 'CLOSE', or 'close'.")
	}

	for _, p := range path {
		if err := e.Window.SetPosition(p); err != nil {
			e.Log.Warn("window move", "target", p, "err", err)
			return command.Error(e.Out, "Unable to move the window.")
		}
	}
	return 0
}

// switchArg parses an ON/OFF argument.
func switchArg(s string) (pins.Level, bool) {
	switch {
	case oneOf(s, "ON", "on", "1"):
		return pins.High, true
	case oneOf(s, "OFF", "off", "0"):
		return pins.Low, true
	}
	return pins.Low, false
}

const badSwitchArg = "Expected one of 'on', 'ON', '1', 'off', 'OFF', or '0'."

// outputSwitch implements the get-or-set commands on a single output pin.
// It returns the level read back from the pin.
func (e *Env) outputSwitch(argv []string, n int) (pins.Level, int) {
	p := pins.MustNumber(n)
	if len(argv) > 2 {
		return pins.Low, command.Error(e.Out, "Command '", argv[0], "' takes at most 1 argument.")
	}
	if err := e.Pins.SetMode(p, pins.Output); err != nil {
		e.Log.Warn("set pin mode", "pin", p.Name, "err", err)
		return pins.Low, command.Error(e.Out, "Unable to set the mode of pin ", p.Name, ".")
	}

	if len(argv) == 2 {
		l, ok := switchArg(argv[1])
		if !ok {
			return pins.Low, command.Error(e.Out, badSwitchArg)
		}
		if _, err := e.Pins.DigitalWrite(p, l); err != nil {
			e.Log.Warn("digital write", "pin", p.Name, "err", err)
			return pins.Low, command.Error(e.Out, "Unable to write to pin ", p.Name, ".")
		}
	}

	l, err := e.Pins.DigitalRead(p)
	if err != nil {
		e.Log.Warn("digital read", "pin", p.Name, "err", err)
		return pins.Low, command.Error(e.Out, "Unable to read from pin ", p.Name, ".")
	}
	return l, 0
}

func (e *Env) headlights(argv []string) int {
	l, st := e.outputSwitch(argv, e.HeadlightPin)
	if st != 0 {
		return st
	}
	if l == pins.High {
		command.Println(e.Out, "ON")
	} else {
		command.Println(e.Out, "OFF")
	}
	return 0
}

func (e *Env) checkEngineLight(argv []string) int {
	l, st := e.outputSwitch(argv, e.LampPin)
	if st != 0 {
		return st
	}
	command.Println(e.Out, int(l))
	return 0
}

func (e *Env) checkEngineStatus(argv []string) int {
	p := pins.MustNumber(e.SwitchPin)
	if err := e.Pins.SetMode(p, pins.Input); err != nil {
		e.Log.Warn("set pin mode", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to set the mode of pin ", p.Name, ".")
	}
	if len(argv) != 1 {
		return command.Error(e.Out, "Command 'checkengine_status' takes no arguments.")
	}
	l, err := e.Pins.DigitalRead(p)
	if err != nil {
		e.Log.Warn("digital read", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to read from pin ", p.Name, ".")
	}
	command.Println(e.Out, int(l))
	return 0
}
