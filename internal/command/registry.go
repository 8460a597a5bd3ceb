// internal/command/registry.go
package command

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/flash"
	"github.com/tamzrod/ino-console/internal/progmem"
)

// Decl declares one command for Build.
type Decl struct {
	Name        string
	Usage       string
	Description string
	Handler     Handler
}

// Registry is the fixed, ordered command table. It is immutable once built.
type Registry struct {
	img   *flash.Image
	text  *progmem.Text[Handler]
	table progmem.Pointer[Record, recordLoader]
	n     int
}

// Build lays out decls, in order, into a new image:
//
//	string pool | count | record 0 | record 1 | ...
//
// Names must be non-empty and free of whitespace. Duplicate names are not
// rejected; lookup returns the first.
func Build(decls ...Decl) (*Registry, error) {
	if len(decls) == 0 {
		return nil, errors.New("command: registry needs at least one command")
	}
	for i, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("command: declaration %d has no name", i)
		}
		if strings.ContainsAny(d.Name, " \t\r\n") {
			return nil, fmt.Errorf("command: name %q contains whitespace", d.Name)
		}
		if d.Handler == nil {
			return nil, fmt.Errorf("command: %q has no handler", d.Name)
		}
	}

	b := flash.NewBuilder()
	text := &progmem.Text[Handler]{}

	type lits struct{ name, usage, descr progmem.Literal }
	pool := make([]lits, len(decls))
	for i, d := range decls {
		pool[i] = lits{
			name:  progmem.PutString(b, d.Name),
			usage: progmem.PutString(b, d.Usage),
			descr: progmem.PutString(b, d.Description),
		}
	}

	count := b.Reserve(4)
	first := b.Here()
	for i, d := range decls {
		rec := progmem.PutView(b, pool[i].name)
		debug.Check(rec == first+flash.Addr(i)*recordSize, "command: record misaligned")
		progmem.PutView(b, pool[i].usage)
		progmem.PutView(b, pool[i].descr)
		progmem.PutFunc(b, text, d.Handler)
	}
	b.PatchWord(count, uint32(len(decls)))

	img, err := b.Seal()
	if err != nil {
		return nil, fmt.Errorf("command: seal registry: %w", err)
	}

	return &Registry{
		img:   img,
		text:  text,
		table: progmem.At[Record, recordLoader](img, first),
		n:     int(progmem.At[uint32, progmem.Word](img, count).Load()),
	}, nil
}

func (r *Registry) Len() int            { return r.n }
func (r *Registry) Image() *flash.Image { return r.img }

// At returns the i'th command in registration order.
func (r *Registry) At(i int) Descriptor {
	debug.Check(i >= 0 && i < r.n, "command: registry index out of range")
	return Descriptor{ref: r.table.Index(i), text: r.text}
}

// All walks the table in registration order.
func (r *Registry) All() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		end := r.table.Add(r.n)
		for p := r.table; p.Less(end); p.Inc() {
			if !yield(Descriptor{ref: p.Deref(), text: r.text}) {
				return
			}
		}
	}
}

// Lookup finds the first command whose name equals name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	for d := range r.All() {
		if d.Name().Equal(name) {
			return d, true
		}
	}
	return Descriptor{}, false
}
