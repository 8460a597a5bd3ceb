// internal/command/parse.go
package command

import (
	"golang.org/x/exp/constraints"

	"github.com/tamzrod/ino-console/internal/fixed"
)

// ParseDecimal parses an optionally signed decimal integer. Parsing stops at
// the first non-digit and keeps what was read so far, so "12a" is 12. It
// fails on empty input, on input without a leading digit, on a sign for an
// unsigned T and when the value does not fit T.
func ParseDecimal[T constraints.Integer](s string) fixed.Optional[T] {
	if s == "" {
		return fixed.None[T]()
	}

	negate := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		if ^T(0) > 0 {
			// negative number but T is unsigned
			return fixed.None[T]()
		}
		negate = true
		s = s[1:]
	}
	if s == "" || s[0] < '0' || s[0] > '9' {
		return fixed.None[T]()
	}

	// Accumulate towards the sign so that the most negative value parses.
	var value T
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		digit := T(s[i] - '0')
		if negate {
			lim := minOf[T]()
			if value < lim/10 {
				// multiplication would overflow
				return fixed.None[T]()
			}
			value *= 10
			if value-lim < digit {
				// subtraction would overflow
				return fixed.None[T]()
			}
			value -= digit
		} else {
			lim := maxOf[T]()
			if value > lim/10 {
				return fixed.None[T]()
			}
			value *= 10
			if lim-value < digit {
				return fixed.None[T]()
			}
			value += digit
		}
	}
	return fixed.Some(value)
}

func maxOf[T constraints.Integer]() T {
	if ^T(0) > 0 {
		return ^T(0)
	}
	return ^T(0) ^ minOf[T]()
}

func minOf[T constraints.Integer]() T {
	if ^T(0) > 0 {
		return 0
	}
	// only the sign bit set
	var v T = 1
	for v<<1 != 0 {
		v <<= 1
	}
	return v
}
