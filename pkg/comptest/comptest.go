// Package comptest provides isolated component testing without a real host
// page. A ComponentTester owns its own registry, viewport, and document, so
// definitions made in one test never leak into another.
package comptest

import (
	"testing"

	"github.com/go-facet/facet/pkg/compose"
	"github.com/go-facet/facet/pkg/host"
	"github.com/go-facet/facet/pkg/query"
)

const (
	// DefaultTestWidth is the default logical viewport width.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical viewport height.
	DefaultTestHeight = 600
)

// ComponentTester drives component definitions through the same lifecycle a
// real host would: registration, markup parsing, upgrade, connection,
// attribute mutation, viewport changes, and teardown.
type ComponentTester struct {
	registry *host.Registry
	viewport *host.Viewport
	doc      *host.Document
}

// NewTester creates a tester with the default viewport size. Call Cleanup
// when done, or use NewTesterWithT instead.
func NewTester() *ComponentTester {
	registry := host.NewRegistry()
	viewport := host.NewViewport(DefaultTestWidth, DefaultTestHeight)
	return &ComponentTester{
		registry: registry,
		viewport: viewport,
		doc:      host.NewDocument(registry, viewport),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *ComponentTester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the document, running every disposed operation and
// detaching every listener.
func (t *ComponentTester) Cleanup() {
	t.doc.Unmount()
}

// Registry returns the tester's isolated registry.
func (t *ComponentTester) Registry() *host.Registry {
	return t.registry
}

// Viewport returns the tester's viewport.
func (t *ComponentTester) Viewport() *host.Viewport {
	return t.viewport
}

// Document returns the tester's document.
func (t *ComponentTester) Document() *host.Document {
	return t.doc
}

// Compose defines a component type in the tester's registry.
func (t *ComponentTester) Compose(base any, tag string, def compose.DefinitionFunc) (*compose.ComponentType, error) {
	return compose.ComposeIn(t.registry, base, tag, def)
}

// MustCompose is Compose that panics on definition errors, for statically
// known test fixtures.
func (t *ComponentTester) MustCompose(base any, tag string, def compose.DefinitionFunc) *compose.ComponentType {
	ct, err := t.Compose(base, tag, def)
	if err != nil {
		panic(err)
	}
	return ct
}

// LoadMarkup parses markup, sets it as the document root, and mounts it,
// upgrading and connecting every defined component in document order.
func (t *ComponentTester) LoadMarkup(src string) error {
	if err := t.doc.LoadMarkup([]byte(src)); err != nil {
		return err
	}
	t.doc.Mount()
	return nil
}

// Mount sets root as the document root and mounts it.
func (t *ComponentTester) Mount(root *host.Node) {
	t.doc.SetRoot(root)
	t.doc.Mount()
}

// MountTag creates, mounts, and returns a single element of the given tag
// with the given attribute pairs ("name", "value", ...).
func (t *ComponentTester) MountTag(tag string, pairs ...string) *host.Node {
	if len(pairs)%2 != 0 {
		panic("comptest: MountTag attribute pairs must come in name/value pairs")
	}
	n := t.doc.CreateElement(tag)
	for i := 0; i < len(pairs); i += 2 {
		n.SetAttribute(pairs[i], pairs[i+1])
	}
	t.Mount(n)
	return n
}

// Resize changes the viewport, triggering responsive re-resolution on every
// bound component.
func (t *ComponentTester) Resize(width, height float64) {
	t.viewport.Resize(width, height)
}

// Fire dispatches an event on the node with the given id. It reports
// whether the node was found.
func (t *ComponentTester) Fire(id, eventType string, data any) bool {
	n := query.ByID(t.doc.Root(), id)
	if n == nil {
		return false
	}
	n.DispatchEvent(eventType, data)
	return true
}

// Instance returns the component instance mounted on the node with the
// given id, or nil when the node is missing or not upgraded.
func (t *ComponentTester) Instance(id string) *compose.Instance {
	n := query.ByID(t.doc.Root(), id)
	if n == nil {
		return nil
	}
	inst, _ := n.Component().(*compose.Instance)
	return inst
}

// InstanceOf returns the first mounted instance of the given tag, or nil.
func (t *ComponentTester) InstanceOf(tag string) *compose.Instance {
	nodes := query.ByTag(t.doc.Root(), tag)
	for _, n := range nodes {
		if inst, ok := n.Component().(*compose.Instance); ok {
			return inst
		}
	}
	return nil
}
