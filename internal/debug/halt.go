// internal/debug/halt.go
package debug

// Invariant is the panic value of a failed assertion. The console loop
// recovers it only to report and stop.
type Invariant string

func (v Invariant) Error() string { return "invariant violated: " + string(v) }

// Check panics with an Invariant if b is false, regardless of build tags.
func Check(b bool, message string) {
	if !b {
		panic(Invariant(message))
	}
}

// Unreachable marks a code path that only an internal defect can reach.
func Unreachable(message string) {
	panic(Invariant("unreachable: " + message))
}
