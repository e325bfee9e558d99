// Package errors provides structured error handling for the Facet framework.
//
// Runtime failures inside host-invoked lifecycle callbacks are never allowed
// to propagate back into host dispatch. They are reported through the global
// handler instead, and the failing operation degrades to a defined fallback.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindDefinition indicates an invalid component-type or descriptor definition.
	KindDefinition
	// KindCoercion indicates an attribute value that failed to coerce to its declared type.
	KindCoercion
	// KindBreakpoint indicates a malformed responsive breakpoint-list string.
	KindBreakpoint
	// KindListener indicates an event listener registration problem.
	KindListener
	// KindHost indicates a host document or viewport error.
	KindHost
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDefinition:
		return "definition"
	case KindCoercion:
		return "coercion"
	case KindBreakpoint:
		return "breakpoint"
	case KindListener:
		return "listener"
	case KindHost:
		return "host"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// FacetError represents a structured error in the Facet framework.
type FacetError struct {
	// Op is the operation that failed (e.g., "attr.Bindings.AttributeChanged").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the component tag name, if applicable.
	Component string
	// Attribute is the markup attribute name, if applicable.
	Attribute string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FacetError) Error() string {
	switch {
	case e.Component != "" && e.Attribute != "":
		return fmt.Sprintf("%s [%s] component=%s attribute=%s: %v", e.Op, e.Kind, e.Component, e.Attribute, e.Err)
	case e.Component != "":
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	default:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *FacetError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "compose.Instance.Connected").
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

// CoercionError describes an attribute value that does not parse as its
// declared type. The binding falls back to the descriptor default.
type CoercionError struct {
	// Attribute is the markup attribute name.
	Attribute string
	// Raw is the markup string that failed to coerce.
	Raw string
	// Want is the declared type name ("number", "custom", ...).
	Want string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attribute %q: cannot coerce %q to %s: %v", e.Attribute, e.Raw, e.Want, e.Err)
	}
	return fmt.Sprintf("attribute %q: cannot coerce %q to %s", e.Attribute, e.Raw, e.Want)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// BreakpointError describes a malformed breakpoint-list string. The binding
// recovers by treating the whole string as the unconditional fallback value.
type BreakpointError struct {
	// Attribute is the markup attribute name.
	Attribute string
	// Raw is the full breakpoint-list string.
	Raw string
	// Err is the underlying parse error.
	Err error
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("attribute %q: malformed breakpoint list %q: %v", e.Attribute, e.Raw, e.Err)
}

func (e *BreakpointError) Unwrap() error {
	return e.Err
}
