// internal/command/descriptor.go

// Package command holds the console's command table and dispatcher. The
// table is laid out once into a read-only image; every name, usage and
// description is read back through progmem views, and every handler is
// called through a function reference stored next to them.
package command

import (
	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/flash"
	"github.com/tamzrod/ino-console/internal/progmem"
)

// Handler runs one command. argv[0] is the command name. A negative status
// means the handler already reported an error; a positive status is echoed.
type Handler = func(argv []string) int

// Trait selects one of the texts of a command.
type Trait int

const (
	Name Trait = iota
	Usage
	Description
)

func (t Trait) String() string {
	switch t {
	case Name:
		return "Name"
	case Usage:
		return "Usage"
	case Description:
		return "Description"
	}
	return "Trait(?)"
}

// Record is the stored layout of one command:
// 0-7   name view
// 8-15  usage view
// 16-23 description view
// 24-27 handler entry
type Record struct {
	Name        progmem.View
	Usage       progmem.View
	Description progmem.View
	Handler     progmem.Entry
}

const (
	offName        flash.Addr = 0
	offUsage       flash.Addr = 8
	offDescription flash.Addr = 16
	offHandler     flash.Addr = 24
	recordSize     flash.Addr = 28
)

var (
	nameField        = progmem.Member[Record, progmem.View, progmem.Str]{Offset: offName}
	usageField       = progmem.Member[Record, progmem.View, progmem.Str]{Offset: offUsage}
	descriptionField = progmem.Member[Record, progmem.View, progmem.Str]{Offset: offDescription}
	handlerField     = progmem.Member[Record, progmem.Entry, progmem.Raw[progmem.Entry]]{Offset: offHandler}
)

type recordLoader struct{}

func (recordLoader) Size() flash.Addr { return recordSize }

func (recordLoader) Load(img *flash.Image, a flash.Addr) Record {
	r := progmem.At[Record, recordLoader](img, a).Deref()
	return Record{
		Name:        progmem.Select(r, nameField).Load(),
		Usage:       progmem.Select(r, usageField).Load(),
		Description: progmem.Select(r, descriptionField).Load(),
		Handler:     progmem.Select(r, handlerField).Load(),
	}
}

// Descriptor refers to one command in a registry image. Nothing is loaded
// until one of its accessors is called.
type Descriptor struct {
	ref  progmem.Ref[Record, recordLoader]
	text *progmem.Text[Handler]
}

// Trait loads one text of the command.
func (d Descriptor) Trait(t Trait) progmem.View {
	switch t {
	case Name:
		return progmem.Select(d.ref, nameField).Load()
	case Usage:
		return progmem.Select(d.ref, usageField).Load()
	case Description:
		return progmem.Select(d.ref, descriptionField).Load()
	}
	debug.Unreachable("command: unknown trait")
	return progmem.View{}
}

func (d Descriptor) Name() progmem.View        { return d.Trait(Name) }
func (d Descriptor) Usage() progmem.View       { return d.Trait(Usage) }
func (d Descriptor) Description() progmem.View { return d.Trait(Description) }

// Load copies the whole record.
func (d Descriptor) Load() Record { return d.ref.Load() }

// Handler is the stored function reference of the command.
func (d Descriptor) Handler() progmem.Func[[]string, int] {
	slot := progmem.Select(d.ref, handlerField)
	return progmem.FuncAt(slot.Image(), slot.Addr(), d.text)
}

// Invoke loads the handler and runs it with argv.
func (d Descriptor) Invoke(argv []string) int {
	h := d.Handler()
	debug.Check(h.Valid(), "command: descriptor without handler")
	return h.Call(argv)
}
