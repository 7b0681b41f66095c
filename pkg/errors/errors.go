// Package errors provides structured violation reporting for the uimodel
// packages.
//
// The notification engine never returns errors from its hot paths; protocol
// breaks are reported here instead, so the host application decides whether
// they are fatal (debug builds) or merely logged (release builds).
package errors

import (
	"fmt"
	"time"
)

// ViolationKind identifies the category of a violation.
type ViolationKind int

const (
	// KindUnknown indicates a violation of unknown type.
	KindUnknown ViolationKind = iota
	// KindProtocol indicates a binding-protocol break, such as
	// unregistering a pair that was never registered.
	KindProtocol
	// KindDuplicate indicates a duplicate registration of the same
	// element and mask pair.
	KindDuplicate
	// KindDisposedUse indicates use of a notifier after DisposeAll.
	KindDisposedUse
	// KindIndexRange indicates a flag index outside register capacity.
	KindIndexRange
	// KindConfig indicates an invalid scenario or tool configuration.
	KindConfig
)

func (k ViolationKind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindDuplicate:
		return "duplicate"
	case KindDisposedUse:
		return "disposed"
	case KindIndexRange:
		return "range"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Violation represents a structured protocol violation.
type Violation struct {
	// Op is the operation that detected the violation (e.g., "uimodel.Notifier.Unregister").
	Op string
	// Kind categorizes the violation.
	Kind ViolationKind
	// Detail describes what went wrong.
	Detail string
	// Element is the type name of the element involved, if applicable.
	Element string
	// Mask is the watch or change mask involved, if applicable.
	Mask uint64
	// Err is the underlying error, if any.
	Err error
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
	// Timestamp is when the violation occurred.
	Timestamp time.Time
}

func (v *Violation) Error() string {
	msg := v.Detail
	if v.Err != nil {
		if msg == "" {
			msg = v.Err.Error()
		} else {
			msg = msg + ": " + v.Err.Error()
		}
	}
	if v.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s mask=%#x: %s", v.Op, v.Kind, v.Element, v.Mask, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", v.Op, v.Kind, msg)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "uitree.BuildOwner.FlushBuild").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives violations reported by the uimodel packages.
type Handler interface {
	// HandleViolation is called when a protocol violation is detected.
	HandleViolation(v *Violation)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(p *PanicError)
}
