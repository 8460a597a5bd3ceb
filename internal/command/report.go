// internal/command/report.go
package command

import (
	"fmt"
	"io"
)

// EOL ends every line written to the console.
const EOL = "\r\n"

// Print writes each argument in turn with no separators. Flash views are
// streamed rather than materialized.
func Print(w io.Writer, args ...any) {
	for _, a := range args {
		switch v := a.(type) {
		case string:
			io.WriteString(w, v)
		case io.WriterTo:
			v.WriteTo(w)
		default:
			fmt.Fprint(w, v)
		}
	}
}

// Println is Print followed by EOL.
func Println(w io.Writer, args ...any) {
	Print(w, args...)
	io.WriteString(w, EOL)
}

// Error reports a command failure as "Error: <args...>" and returns the
// error status, so handlers can `return command.Error(...)`.
func Error(w io.Writer, args ...any) int {
	io.WriteString(w, "Error: ")
	Println(w, args...)
	return -1
}

// CheckArgs validates the argument count, argv[0] included. A max of -1
// means exactly min. It reports and returns false on a mismatch.
func CheckArgs(w io.Writer, argv []string, min, max int) bool {
	if len(argv) < min {
		Error(w, "Command '", argv[0], "' expects at least ", min-1, " arguments.")
		return false
	}
	if max == -1 {
		max = min
	}
	if len(argv) > max {
		Error(w, "Command '", argv[0], "' expects at most ", max-1, " arguments.")
		return false
	}
	return true
}
