// Package errors provides structured error handling for the layout engine.
//
// Errors fall into three groups. Usage errors (a caller asked for something the
// tree cannot do, such as attaching to an element that cannot hold children)
// are reported through the global handler and returned as *LayoutError.
// Precondition violations mean the tree is already corrupt; they are raised
// with panic(*PreconditionError) and are never recovered by the engine.
// Everything else that is merely idle (an unbound event, a redundant
// registration) is not an error at all.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Sentinel causes wrapped by LayoutError.Err.
var (
	// ErrNotContainer is returned when an element without the container
	// capability is used as a parent.
	ErrNotContainer = stderrors.New("element cannot hold children")
	// ErrNotChild is returned when removing an element that is not a child.
	ErrNotChild = stderrors.New("element is not a child of this container")
	// ErrAlreadyAttached is returned when adding an element that already has a parent.
	ErrAlreadyAttached = stderrors.New("element already has a parent")
	// ErrCycle is returned when an element would become its own ancestor.
	ErrCycle = stderrors.New("element cannot be placed inside its own subtree")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUsage indicates a recoverable caller mistake. The tree is unchanged.
	KindUsage
	// KindPrecondition indicates a violated tree invariant.
	KindPrecondition
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a malformed scene or project file.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindPrecondition:
		return "precondition"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// LayoutError represents a reported, recoverable error.
type LayoutError struct {
	// Op is the operation that failed (e.g., "core.Reparent").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Element describes the element involved, if any.
	Element string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LayoutError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s [%s] element=%s: %v", e.Op, e.Kind, e.Element, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// PreconditionError is the panic value raised when a tree invariant no longer
// holds. It is never returned as an ordinary error.
type PreconditionError struct {
	// Op is the operation that detected the violation.
	Op string
	// Reason describes the violated invariant.
	Reason string
	// Element describes the element involved, if any.
	Element string
}

func (e *PreconditionError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("precondition violated in %s (element=%s): %s", e.Op, e.Element, e.Reason)
	}
	return fmt.Sprintf("precondition violated in %s: %s", e.Op, e.Reason)
}

// Precondition panics with a PreconditionError.
func Precondition(op, element, reason string) {
	panic(&PreconditionError{Op: op, Element: element, Reason: reason})
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.TriggerEvent").
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

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when a recoverable error is reported.
	HandleError(err *LayoutError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Usage builds a usage LayoutError.
func Usage(op, element string, err error) *LayoutError {
	return &LayoutError{Op: op, Kind: KindUsage, Element: element, Err: err, Timestamp: time.Now()}
}

// Config builds a config LayoutError for a malformed scene or project file.
// element names the offending scene node, if any.
func Config(op, element string, err error) *LayoutError {
	return &LayoutError{Op: op, Kind: KindConfig, Element: element, Err: err, Timestamp: time.Now()}
}
