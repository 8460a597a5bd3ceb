//go:build debug

// internal/debug/assert.go
package debug

func Assert(b bool, message string) {
	if !b {
		panic(Invariant(message))
	}
}
