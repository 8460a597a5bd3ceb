// internal/console/console_test.go
package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tamzrod/ino-console/internal/command"
	"github.com/tamzrod/ino-console/internal/debug"
	"github.com/tamzrod/ino-console/internal/fixed"
)

// ---- tokenizer ----

func TestTokenize_CollapsesWhitespace(t *testing.T) {
	tokens := fixed.NewArray[string](10)
	if err := Tokenize("  pinmode  13 OUTPUT ", tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tokens.Slice()
	want := []string{"pinmode", "13", "OUTPUT"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenize_Tabs(t *testing.T) {
	tokens := fixed.NewArray[string](4)
	if err := Tokenize("\ta\t\tb", tokens); err != nil || tokens.Len() != 2 {
		t.Fatalf("got %q %v", tokens.Slice(), err)
	}
}

func TestTokenize_Blank(t *testing.T) {
	tokens := fixed.NewArray[string](4)
	for _, line := range []string{"", "   ", "\t \t"} {
		if err := Tokenize(line, tokens); err != nil || tokens.Len() != 0 {
			t.Fatalf("%q: got %q %v", line, tokens.Slice(), err)
		}
	}
}

func TestTokenize_TooMany(t *testing.T) {
	tokens := fixed.NewArray[string](2)
	if err := Tokenize("a b", tokens); err != nil {
		t.Fatalf("exactly full should fit: %v", err)
	}
	if err := Tokenize("a b c", tokens); !errors.Is(err, ErrTooManyTokens) {
		t.Fatalf("got %v, want ErrTooManyTokens", err)
	}
}

// ---- line reader ----

func TestReadLine_Editing(t *testing.T) {
	r := NewLineReader(strings.NewReader("helpx\b\r\nab\x7fc\n"), 16)

	line, err := r.ReadLine()
	if err != nil || line != "help" {
		t.Fatalf("got %q %v", line, err)
	}
	line, err = r.ReadLine()
	if err != nil || line != "ac" {
		t.Fatalf("got %q %v", line, err)
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want EOF", err)
	}
}

func TestReadLine_BackspaceOnEmpty(t *testing.T) {
	r := NewLineReader(strings.NewReader("\b\bok\n"), 8)
	if line, err := r.ReadLine(); err != nil || line != "ok" {
		t.Fatalf("got %q %v", line, err)
	}
}

func TestReadLine_OverflowDrainsLine(t *testing.T) {
	r := NewLineReader(strings.NewReader("abcdefgh\nnext\n"), 8)
	if r.Cap() != 7 {
		t.Fatalf("cap %d, want 7", r.Cap())
	}

	if _, err := r.ReadLine(); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("got %v, want ErrLineTooLong", err)
	}
	if line, err := r.ReadLine(); err != nil || line != "next" {
		t.Fatalf("overflow leaked into next line: %q %v", line, err)
	}
}

func TestReadLine_ExactCapacity(t *testing.T) {
	r := NewLineReader(strings.NewReader("abcdefg\n"), 8)
	if line, err := r.ReadLine(); err != nil || line != "abcdefg" {
		t.Fatalf("got %q %v", line, err)
	}
}

var errTimeout = errors.New("timeout")

// flakyReader times out every other call.
type flakyReader struct {
	data []byte
	flip bool
}

func (f *flakyReader) Read(p []byte) (int, error) {
	f.flip = !f.flip
	if f.flip {
		return 0, errTimeout
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	p[0] = f.data[0]
	f.data = f.data[1:]
	return 1, nil
}

func TestReadLine_RetriesTransientErrors(t *testing.T) {
	r := NewLineReader(&flakyReader{data: []byte("hi\n")}, 8)
	if _, err := r.ReadLine(); !errors.Is(err, errTimeout) {
		t.Fatalf("without Retry: got %v", err)
	}

	r = NewLineReader(&flakyReader{data: []byte("hi\n")}, 8)
	r.Retry = func(err error) bool { return errors.Is(err, errTimeout) }
	if line, err := r.ReadLine(); err != nil || line != "hi" {
		t.Fatalf("got %q %v", line, err)
	}
}

// ---- run loop ----

func newTestConsole(t *testing.T, input string, decls ...command.Decl) (*Console, *bytes.Buffer) {
	t.Helper()
	reg, err := command.Build(decls...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := &bytes.Buffer{}
	c := New(strings.NewReader(input), out, command.NewDispatcher(reg, out, nil), Config{
		LineBuffer:  16,
		TokenBuffer: 3,
		Prompt:      "ino> ",
		Banner:      "Initializing...",
	}, nil)
	return c, out
}

func TestRun_Session(t *testing.T) {
	var seen [][]string
	echo := command.Decl{
		Name: "echo",
		Handler: func(argv []string) int {
			seen = append(seen, append([]string(nil), argv...))
			return 0
		},
	}
	seven := command.Decl{
		Name:    "seven",
		Handler: func([]string) int { return 7 },
	}

	input := "echo a b\n" +
		"\n" +
		"nope\n" +
		"echo 1 2 3\n" +
		"echo this-line-is-too-long\n" +
		"seven\n"
	c, out := newTestConsole(t, input, echo, seven)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Initializing...\r\n" +
		"ino> " +
		"ino> " +
		"ino> Error: Unknown command 'nope'.\r\n" +
		"ino> Error: Too many tokens in command.\r\n" +
		"ino> Error: Command too long.\r\n" +
		"ino> 7\r\n" +
		"ino> "
	if out.String() != want {
		t.Fatalf("transcript mismatch:\n got %q\nwant %q", out.String(), want)
	}
	if len(seen) != 1 || len(seen[0]) != 3 || seen[0][2] != "b" {
		t.Fatalf("handler saw %q", seen)
	}
}

func TestRun_HaltsOnInvariant(t *testing.T) {
	bad := command.Decl{
		Name:    "bad",
		Handler: func([]string) int { debug.Unreachable("boom"); return 0 },
	}
	ran := false
	after := command.Decl{
		Name:    "after",
		Handler: func([]string) int { ran = true; return 0 },
	}
	c, out := newTestConsole(t, "bad\nafter\n", bad, after)

	if err := c.Run(context.Background()); !errors.Is(err, ErrHalted) {
		t.Fatalf("got %v, want ErrHalted", err)
	}
	if ran {
		t.Fatalf("console kept running after an invariant failure")
	}
	if !strings.Contains(out.String(), "Assertion: \"unreachable: boom\" failed. Halting.") {
		t.Fatalf("missing halt report: %q", out.String())
	}
}

func TestRun_OtherPanicsPropagate(t *testing.T) {
	bad := command.Decl{
		Name:    "bad",
		Handler: func([]string) int { panic("plain") },
	}
	c, _ := newTestConsole(t, "bad\n", bad)

	defer func() {
		if r := recover(); r != "plain" {
			t.Fatalf("got %v", r)
		}
	}()
	c.Run(context.Background())
}

func TestRun_Cancelled(t *testing.T) {
	noop := command.Decl{Name: "x", Handler: func([]string) int { return 0 }}
	c, out := newTestConsole(t, "x\n", noop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if out.String() != "Initializing...\r\n" {
		t.Fatalf("got %q", out.String())
	}
}
