// internal/command/report_test.go
package command

import (
	"bytes"
	"testing"

	"github.com/tamzrod/ino-console/internal/flash"
	"github.com/tamzrod/ino-console/internal/progmem"
)

func TestError_Format(t *testing.T) {
	b := flash.NewBuilder()
	lit := progmem.PutString(b, " is not currently in OUTPUT mode.")
	img, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal() err=%v", err)
	}

	var out bytes.Buffer
	if status := Error(&out, "Pin ", "13", lit.In(img)); status != -1 {
		t.Fatalf("status=%d", status)
	}
	want := "Error: Pin 13 is not currently in OUTPUT mode." + EOL
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}

	out.Reset()
	Error(&out, 1, 2, " x")
	if out.String() != "Error: 12 x"+EOL {
		t.Fatalf("arguments should be concatenated, got %q", out.String())
	}
}

func TestCheckArgs(t *testing.T) {
	var out bytes.Buffer

	if !CheckArgs(&out, []string{"pinmode", "13"}, 2, 3) || out.Len() != 0 {
		t.Fatalf("valid arity rejected: %q", out.String())
	}

	if CheckArgs(&out, []string{"pinmode"}, 2, 3) {
		t.Fatalf("too few accepted")
	}
	if want := "Error: Command 'pinmode' expects at least 1 arguments." + EOL; out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}

	out.Reset()
	if CheckArgs(&out, []string{"digitalread", "1", "2"}, 2, -1) {
		t.Fatalf("too many accepted")
	}
	if want := "Error: Command 'digitalread' expects at most 1 arguments." + EOL; out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}
