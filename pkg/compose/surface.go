package compose

import (
	stderrors "errors"
	"fmt"

	"github.com/go-facet/facet/pkg/attr"
)

// Op is one named, overridable operation in a component's behavior table.
type Op func(self *Instance, args ...any) any

// Lifecycle operation names. The host's creation notification invokes
// OpCreated after attribute bindings are initialized; the teardown
// notification invokes OpDisposed before listeners are detached.
const (
	OpCreated  = "created"
	OpDisposed = "disposed"
)

// Surface is the mutable override surface handed to a definition function.
// Everything defined on it becomes part of the new type's behavior table
// and descriptor list.
type Surface struct {
	ops         map[string]Op
	descriptors []*attr.Descriptor
	declared    map[string]bool
	errs        []error
}

func newSurface() *Surface {
	return &Surface{
		ops:      make(map[string]Op),
		declared: make(map[string]bool),
	}
}

// Define sets the implementation of a named operation. Redefining a name on
// the same surface is last-definition-wins.
func (s *Surface) Define(name string, op Op) {
	if name == "" || op == nil {
		s.errs = append(s.errs, fmt.Errorf("Define(%q): empty name or nil op", name))
		return
	}
	s.ops[name] = op
}

// OnCreated registers the creation lifecycle operation.
func (s *Surface) OnCreated(fn func(self *Instance)) {
	s.Define(OpCreated, func(self *Instance, args ...any) any {
		fn(self)
		return nil
	})
}

// OnDisposed registers the teardown lifecycle operation.
func (s *Surface) OnDisposed(fn func(self *Instance)) {
	s.Define(OpDisposed, func(self *Instance, args ...any) any {
		fn(self)
		return nil
	})
}

// Attributes declares attribute descriptors on the new type. Declaring the
// same attribute name twice on one surface is a definition error.
func (s *Surface) Attributes(descriptors ...*attr.Descriptor) {
	for _, d := range descriptors {
		if d == nil {
			s.errs = append(s.errs, fmt.Errorf("nil attribute descriptor"))
			continue
		}
		if s.declared[d.Name()] {
			s.errs = append(s.errs, fmt.Errorf("attribute %q declared twice", d.Name()))
			continue
		}
		s.declared[d.Name()] = true
		s.descriptors = append(s.descriptors, d)
	}
}

// Attribute builds and declares one descriptor in place. Descriptor
// construction failures become definition errors of the surrounding
// Compose call.
func (s *Surface) Attribute(name string, opts attr.Options) {
	d, err := attr.New(name, opts)
	if err != nil {
		s.errs = append(s.errs, err)
		return
	}
	s.Attributes(d)
}

func (s *Surface) err() error {
	return stderrors.Join(s.errs...)
}

// Base is the read-only resolved behavior table of the extended type.
// Definitions use it for explicit super calls:
//
//	surface.Define("close", func(self *compose.Instance, args ...any) any {
//	    base.Call(self, "close")
//	    // override logic runs after the base's
//	    return nil
//	})
type Base struct {
	ops map[string]Op
}

// Has reports whether the base behavior table defines name.
func (b Base) Has(name string) bool {
	_, ok := b.ops[name]
	return ok
}

// Call invokes the base implementation of name with self as the receiving
// instance. Calling an operation the base does not define returns nil.
func (b Base) Call(self *Instance, name string, args ...any) any {
	op, ok := b.ops[name]
	if !ok {
		return nil
	}
	return op(self, args...)
}
