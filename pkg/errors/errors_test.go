package errors

import (
	"fmt"
	"strings"
	"testing"
)

// captureHandler records reported errors for assertions.
type captureHandler struct {
	errors []*FacetError
	panics []*PanicError
}

func (h *captureHandler) HandleError(err *FacetError) {
	h.errors = append(h.errors, err)
}

func (h *captureHandler) HandlePanic(err *PanicError) {
	h.panics = append(h.panics, err)
}

func TestReport_RoutesToHandler(t *testing.T) {
	handler := &captureHandler{}
	prev := SetHandler(handler)
	defer SetHandler(prev)

	Report(&FacetError{
		Op:        "attr.coerce",
		Kind:      KindCoercion,
		Component: "x-carousel",
		Attribute: "delay",
		Err:       fmt.Errorf("not a number"),
	})

	if len(handler.errors) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(handler.errors))
	}
	err := handler.errors[0]
	if err.Timestamp.IsZero() {
		t.Error("expected Timestamp to be filled in")
	}
	msg := err.Error()
	if !strings.Contains(msg, "component=x-carousel") || !strings.Contains(msg, "attribute=delay") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestReport_NilIsNoop(t *testing.T) {
	handler := &captureHandler{}
	prev := SetHandler(handler)
	defer SetHandler(prev)

	Report(nil)
	ReportPanic(nil)

	if len(handler.errors) != 0 || len(handler.panics) != 0 {
		t.Errorf("expected no reports, got %d errors and %d panics", len(handler.errors), len(handler.panics))
	}
}

func TestRecover_ReportsPanic(t *testing.T) {
	handler := &captureHandler{}
	prev := SetHandler(handler)
	defer SetHandler(prev)

	func() {
		defer Recover("test.op")
		panic("boom")
	}()

	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 recovered panic, got %d", len(handler.panics))
	}
	p := handler.panics[0]
	if p.Value != "boom" {
		t.Errorf("expected panic value 'boom', got %v", p.Value)
	}
	if p.Op != "test.op" {
		t.Errorf("expected op 'test.op', got %q", p.Op)
	}
	if p.StackTrace == "" {
		t.Error("expected stack trace to be captured")
	}
}

func TestSetHandler_ReturnsPreviousHandler(t *testing.T) {
	outer := &captureHandler{}
	prev := SetHandler(outer)
	defer SetHandler(prev)

	inner := &captureHandler{}
	replaced := SetHandler(inner)
	if replaced != ErrorHandler(outer) {
		t.Fatal("SetHandler must return the handler it replaces")
	}

	// Restoring the returned handler routes reports to it again.
	SetHandler(replaced)
	Report(&FacetError{Op: "test.op", Kind: KindUnknown, Err: fmt.Errorf("x")})
	if len(outer.errors) != 1 || len(inner.errors) != 0 {
		t.Errorf("restored handler got %d reports, replaced one got %d", len(outer.errors), len(inner.errors))
	}

	// nil installs a fresh default and still returns the previous handler.
	if got := SetHandler(nil); got != ErrorHandler(outer) {
		t.Error("SetHandler(nil) must return the handler it replaces")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) must install a LogHandler, got %T", DefaultHandler)
	}
}

func TestErrorKind_String(t *testing.T) {
	cases := map[ErrorKind]string{
		KindUnknown:    "unknown",
		KindDefinition: "definition",
		KindCoercion:   "coercion",
		KindBreakpoint: "breakpoint",
		KindListener:   "listener",
		KindHost:       "host",
		KindPanic:      "panic",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestCoercionError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("strconv failure")
	err := &CoercionError{Attribute: "delay", Raw: "abc", Want: "number", Err: inner}
	if err.Unwrap() != inner {
		t.Error("expected Unwrap to return the inner error")
	}
	if !strings.Contains(err.Error(), `"abc"`) {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
