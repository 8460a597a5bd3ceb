// internal/commands/commands.go

// Package commands is the console's command set: pin access plus the few
// vehicle functions wired to fixed pins.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/pins"
	"github.com/tamzrod/ino-console/internal/stepper"
)

// Env is what the handlers act on. All of it is owned by the console loop.
type Env struct {
	Out    io.Writer
	Pins   *pins.Bank
	Window *stepper.Motor
	Log    *slog.Logger

	HeadlightPin int
	SwitchPin    int
	LampPin      int
}

// Registry builds the command table. help comes first and lists itself.
func Registry(env *Env) (*command.Registry, error) {
	if env.Out == nil || env.Pins == nil || env.Window == nil {
		return nil, errors.New("commands: env needs Out, Pins and Window")
	}
	if env.Log == nil {
		env.Log = slog.New(slog.DiscardHandler)
	}

	var reg *command.Registry
	decls := []command.Decl{
		{
			Name:        "help",
			Usage:       "help",
			Description: "Print this help menu.",
			Handler:     command.Help(env.Out, &reg),
		},
		{
			Name:        "pinmode",
			Usage:       "pinmode <pin> [mode]",
			Description: "Get or set the mode for the given pin.",
			Handler:     env.pinMode,
		},
		{
			Name:        "digitalread",
			Usage:       "digitalread <pin>",
			Description: "Read whether the given pin is HIGH (1) or LOW (0).",
			Handler:     env.digitalRead,
		},
		{
			Name:        "digitalwrite",
			Usage:       "digitalwrite <pin> <value>",
			Description: "Drive the given pin HIGH (1) or LOW (0).",
			Handler:     env.digitalWrite,
		},
		{
			Name:        "analogread",
			Usage:       "analogread <pin>",
			Description: "Show the analog voltage reading in the range [0, 1024) for the pin.",
			Handler:     env.analogRead,
		},
		{
			Name:        "analogwrite",
			Usage:       "analogwrite <pin> <value>",
			Description: "Drive the given PWM pin with a pulse width in the range [0, 256).",
			Handler:     env.analogWrite,
		},
		{
			Name:        "window",
			Usage:       "window [OPEN/CLOSE]",
			Description: "Get or set the window position.",
			Handler:     env.window,
		},
		{
			Name:        "headlights",
			Usage:       "headlights [ON/OFF]",
			Description: "Modify or query the state of the headlights.",
			Handler:     env.headlights,
		},
		{
			Name:        "checkengine_status",
			Usage:       "checkengine_status",
			Description: "Check whether there is a problem with the engine even when the check engine light is off.",
			Handler:     env.checkEngineStatus,
		},
		{
			Name:        "checkengine_light",
			Usage:       "checkengine_light [ON/OFF]",
			Description: "Get or set whether the check engine light is on or off.",
			Handler:     env.checkEngineLight,
		},
	}

	var err error
	reg, err = command.Build(decls...)
	if err != nil {
		return nil, fmt.Errorf("commands: %w", err)
	}
	return reg, nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
