package errors

import (
	"fmt"
	"os"
)

// LogHandler is a Handler that logs violations to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleViolation logs a Violation to stderr.
func (h *LogHandler) HandleViolation(v *Violation) {
	if v == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[uimodel violation] %s\n", v.Error())
		if v.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", v.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[uimodel violation] %s [%s]: %s\n", v.Op, v.Kind, v.Detail)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(p *PanicError) {
	if p == nil {
		return
	}
	if p.Op != "" {
		fmt.Fprintf(os.Stderr, "[uimodel panic] %s: %v\n", p.Op, p.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[uimodel panic] %v\n", p.Value)
	}
	if h.Verbose && p.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", p.StackTrace)
	}
}
