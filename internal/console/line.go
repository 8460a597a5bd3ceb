// internal/console/line.go
package console

import (
	"bufio"
	"errors"
	"io"

	"github.com/tamzrod/ino-console/internal/fixed"
)

var (
	ErrLineTooLong   = errors.New("console: line too long")
	ErrTooManyTokens = errors.New("console: too many tokens")
)

const (
	backspace = '\b'
	del       = 0x7f
)

// LineReader reads newline-terminated lines into a fixed buffer.
// A buffer of size n holds n-1 characters; the last byte is reserved for the
// terminator, as on the device.
type LineReader struct {
	r   *bufio.Reader
	buf *fixed.Array[byte]

	// Retry reports whether a read error is transient (a serial read
	// timeout) and the read should be attempted again. Nil means no error
	// is transient.
	Retry func(error) bool
}

func NewLineReader(r io.Reader, size int) *LineReader {
	if size < 2 {
		size = 2
	}
	return &LineReader{
		r:   bufio.NewReader(r),
		buf: fixed.NewArray[byte](size - 1),
	}
}

// Cap is the longest line accepted.
func (l *LineReader) Cap() int { return l.buf.Cap() }

// ReadLine blocks until a full line is available and returns it without the
// newline. '\r' is dropped; backspace and DEL erase the previous character.
// A line that does not fit is consumed up to its newline and ErrLineTooLong
// is returned. io.EOF is returned only when no partial line is pending.
func (l *LineReader) ReadLine() (string, error) {
	l.buf.Reset()
	for {
		c, err := l.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) && l.buf.Len() > 0 {
				return string(l.buf.Slice()), nil
			}
			return "", err
		}

		switch c {
		case '\n':
			return string(l.buf.Slice()), nil
		case '\r', 0:
		case backspace, del:
			l.buf.Pop()
		default:
			if !l.buf.Push(c) {
				if err := l.drain(); err != nil && !errors.Is(err, io.EOF) {
					return "", err
				}
				return "", ErrLineTooLong
			}
		}
	}
}

func (l *LineReader) drain() error {
	for {
		c, err := l.readByte()
		if err != nil {
			return err
		}
		if c == '\n' {
			return nil
		}
	}
}

func (l *LineReader) readByte() (byte, error) {
	for {
		c, err := l.r.ReadByte()
		if err == nil {
			return c, nil
		}
		if l.Retry == nil || !l.Retry(err) {
			return 0, err
		}
	}
}

// Tokenize splits line into runs of non-blank characters separated by
// spaces and tabs, appending them to tokens. It fails with ErrTooManyTokens
// when the line holds more tokens than tokens has room for; tokens is then
// left partially filled and should be discarded.
func Tokenize(line string, tokens *fixed.Array[string]) error {
	tokens.Reset()
	i := 0
	for {
		for i < len(line) && isBlank(line[i]) {
			i++
		}
		if i == len(line) {
			return nil
		}
		start := i
		for i < len(line) && !isBlank(line[i]) {
			i++
		}
		if !tokens.Push(line[start:i]) {
			return ErrTooManyTokens
		}
	}
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
