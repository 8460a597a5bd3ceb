// internal/commands/pin.go
package commands

import (
	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/pins"
)

// pinArgs checks the argument count and resolves argv[1] to a pin,
// reporting either failure.
func (e *Env) pinArgs(argv []string, min, max int) (pins.Pin, bool) {
	if !command.CheckArgs(e.Out, argv, min, max) {
		return pins.Pin{}, false
	}
	p, ok := pins.ByName(argv[1])
	if !ok {
		command.Error(e.Out, "Invalid pin name '", argv[1], "'.")
		return pins.Pin{}, false
	}
	return p, true
}

func (e *Env) pinMode(argv []string) int {
	p, ok := e.pinArgs(argv, 2, 3)
	if !ok {
		return -1
	}
	if len(argv) == 2 {
		command.Println(e.Out, e.Pins.Mode(p).String())
		return 0
	}

	var m pins.Mode
	switch {
	case oneOf(argv[2], "INPUT", "input"):
		m = pins.Input
	case oneOf(argv[2], "OUTPUT", "output"):
		m = pins.Output
	case oneOf(argv[2], "INPUT_PULLUP", "input_pullup"):
		m = pins.InputPullup
	default:
		return command.Error(e.Out, "Invalid pin mode '", argv[2], "'.")
	}
	if err := e.Pins.SetMode(p, m); err != nil {
		e.Log.Warn("set pin mode", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to set the mode of pin ", argv[1], ".")
	}
	return 0
}

func (e *Env) digitalRead(argv []string) int {
	p, ok := e.pinArgs(argv, 2, -1)
	if !ok {
		return -1
	}
	l, err := e.Pins.DigitalRead(p)
	if err != nil {
		e.Log.Warn("digital read", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to read from pin ", argv[1], ".")
	}
	command.Println(e.Out, int(l))
	return 0
}

func (e *Env) digitalWrite(argv []string) int {
	p, ok := e.pinArgs(argv, 3, -1)
	if !ok {
		return -1
	}

	var l pins.Level
	switch {
	case oneOf(argv[2], "low", "LOW", "0"):
		l = pins.Low
	case oneOf(argv[2], "high", "HIGH", "1"):
		l = pins.High
	default:
		return command.Error(e.Out, "Invalid logic level '", argv[2], "'.")
	}

	st, err := e.Pins.DigitalWrite(p, l)
	if err != nil {
		e.Log.Warn("digital write", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to write to pin ", argv[1], ".")
	}
	if st != pins.Good {
		return command.Error(e.Out, "Pin ", argv[1], " is not currently in OUTPUT mode.")
	}
	return 0
}

func (e *Env) analogRead(argv []string) int {
	p, ok := e.pinArgs(argv, 2, -1)
	if !ok {
		return -1
	}

	v, st, err := e.Pins.AnalogRead(p)
	switch {
	case st == pins.BadPinKind:
		return command.Error(e.Out, "Pin ", argv[1], " is not an analog pin.")
	case st == pins.BadPinMode:
		return command.Error(e.Out, "Pin ", argv[1], " is not in INPUT or INPUT_PULLUP mode.")
	case err != nil || st != pins.Good:
		e.Log.Warn("analog read", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to read from pin ", argv[1], ".")
	}
	command.Println(e.Out, v)
	return 0
}

func (e *Env) analogWrite(argv []string) int {
	p, ok := e.pinArgs(argv, 3, -1)
	if !ok {
		return -1
	}
	value, ok := command.ParseDecimal[int32](argv[2]).Get()
	if !ok {
		return command.Error(e.Out, "Cannot parse '", argv[2], "' as a decimal integer in analogwrite.")
	}

	st, err := e.Pins.AnalogWrite(p, int(value))
	switch {
	case st == pins.BadAnalogWriteValue:
		return command.Error(e.Out, argv[2], " is out-of-range for analogwrite (must be in the range [",
			pins.AnalogWriteMin, ", ", pins.AnalogWriteMax+1, ")).")
	case st == pins.BadPinKind:
		return command.Error(e.Out, "Pin ", argv[1], " is not PWM-enabled.")
	case st == pins.BadPinMode:
		return command.Error(e.Out, "Pin ", argv[1], " is not in OUTPUT mode.")
	case err != nil:
		e.Log.Warn("analog write", "pin", p.Name, "err", err)
		return command.Error(e.Out, "Unable to write to pin ", argv[1], ".")
	}
	return 0
}
