//go:build !debug

// internal/debug/assert_release.go

// Package debug provides assertions that can be enabled with the debug build
// tag or will otherwise compile to no-ops, plus the unconditional halt used
// when the console reaches a state it assumes to be impossible.
package debug

// Assert panics if b is false.
func Assert(b bool, message string) {}
