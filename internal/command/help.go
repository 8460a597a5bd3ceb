// internal/command/help.go
package command

import (
	"io"
	"strings"

	"github.com/tamzrod/ino-console/internal/progmem"
)

var helpHeaders = [3]string{"Name", "Usage", "Description"}

// WriteHelp prints the table as three left-justified columns, each as wide
// as its widest entry (header included) plus one space, under a dashed
// rule as long as the three columns together.
func WriteHelp(w io.Writer, r *Registry) {
	var widths [3]int
	for i, h := range helpHeaders {
		widths[i] = len(h)
	}
	for d := range r.All() {
		for i, t := range [3]Trait{Name, Usage, Description} {
			widths[i] = max(widths[i], d.Trait(t).Size())
		}
	}
	rule := 0
	for i := range widths {
		widths[i]++
		rule += widths[i]
	}

	for i, h := range helpHeaders {
		io.WriteString(w, h)
		pad(w, widths[i]-len(h))
	}
	io.WriteString(w, EOL)
	io.WriteString(w, strings.Repeat("-", rule))
	io.WriteString(w, EOL)

	for d := range r.All() {
		for i, t := range [3]Trait{Name, Usage, Description} {
			leftJustified(w, d.Trait(t), widths[i])
		}
		io.WriteString(w, EOL)
	}
}

func leftJustified(w io.Writer, v progmem.View, width int) {
	v.WriteTo(w)
	pad(w, width-v.Size())
}

func pad(w io.Writer, n int) {
	if n > 0 {
		io.WriteString(w, strings.Repeat(" ", n))
	}
}

// Help returns the handler of the help command. reg is read on each call,
// so the handler can be declared before the registry that contains it is
// built.
func Help(w io.Writer, reg **Registry) Handler {
	return func(argv []string) int {
		WriteHelp(w, *reg)
		return 0
	}
}
