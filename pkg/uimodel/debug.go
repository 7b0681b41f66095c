package uimodel

import "github.com/ohir/uimodel/pkg/errors"

// DebugMode controls how protocol violations are handled.
// When true, violations panic after being reported so they surface
// immediately during development. When false, violations are reported
// to the errors handler and the engine continues.
var DebugMode = true

// SetDebugMode enables or disables debug mode for the engine.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// violate reports v and, in debug mode, panics with it.
// Callers must not hold locks.
func violate(v *errors.Violation) {
	v.StackTrace = errors.CaptureStack()
	errors.Report(v)
	if DebugMode {
		panic(v)
	}
}
