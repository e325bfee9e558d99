// Package host provides the reference host platform for Facet components:
// an in-memory markup tree with ordered attribute-mutation notification, an
// event dispatch surface, a component-type registry, and a viewport service
// that evaluates media predicates.
//
// The core engines only ever see this package through narrow capability
// interfaces (attr.Element, listen.Target, responsive.Viewport), so a real
// host platform can replace it without touching them.
package host

import (
	"github.com/go-facet/facet/pkg/listen"
)

// Component is the contract the host drives. Facet component instances
// implement it; the host invokes the callbacks synchronously on its single
// event loop.
type Component interface {
	// Connected is invoked once, after the instance is attached to a live
	// markup tree.
	Connected()
	// AttributeChanged is invoked for every markup attribute mutation, in
	// mutation order. present is false when the attribute was removed.
	AttributeChanged(name, oldValue, newValue string, present bool)
	// Disconnected is invoked when the instance is detached.
	Disconnected()
}

type attrEntry struct {
	name  string
	value string
}

type nodeListener struct {
	fn      func(listen.Event)
	removed bool
}

// Node is one element of the markup tree. Attributes keep declaration order.
// Not safe for concurrent use; the host model is a single event loop.
type Node struct {
	tag       string
	attrs     []attrEntry
	parent    *Node
	children  []*Node
	doc       *Document
	component Component
	listeners map[string][]*nodeListener
}

// NewNode creates a detached node.
func NewNode(tag string) *Node {
	return &Node{tag: tag}
}

// Tag returns the markup tag name.
func (n *Node) Tag() string {
	return n.tag
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// Document returns the owning document, or nil while detached.
func (n *Node) Document() *Document {
	return n.doc
}

// Component returns the upgraded component instance, or nil.
func (n *Node) Component() Component {
	return n.component
}

// ID returns the value of the "id" attribute.
func (n *Node) ID() string {
	v, _ := n.Attribute("id")
	return v
}

// Attribute returns the attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// Attributes returns the attribute names in declaration order.
func (n *Node) Attributes() []string {
	names := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		names[i] = a.name
	}
	return names
}

// SetAttribute writes a markup attribute and notifies the upgraded
// component synchronously, preserving mutation order.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.attrs {
		if a.name == name {
			old := a.value
			n.attrs[i].value = value
			n.notifyAttribute(name, old, value, true)
			return
		}
	}
	n.attrs = append(n.attrs, attrEntry{name: name, value: value})
	n.notifyAttribute(name, "", value, true)
}

// RemoveAttribute deletes a markup attribute. Removing an absent attribute
// is a no-op.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			n.notifyAttribute(name, a.value, "", false)
			return
		}
	}
}

func (n *Node) notifyAttribute(name, old, new string, present bool) {
	if n.component != nil {
		n.component.AttributeChanged(name, old, new, present)
	}
}

// AppendChild attaches child to n. If n belongs to a mounted document the
// child subtree is upgraded and connected immediately.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.adopt(n.doc)
	if n.doc != nil && n.doc.mounted {
		n.doc.connectTree(child)
	}
}

// RemoveChild detaches child from n, disconnecting its subtree if the
// document is mounted.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			if n.doc != nil && n.doc.mounted {
				n.doc.disconnectTree(child)
			}
			child.parent = nil
			child.adopt(nil)
			return
		}
	}
}

func (n *Node) adopt(doc *Document) {
	n.doc = doc
	for _, c := range n.children {
		c.adopt(doc)
	}
}

// Attach registers fn for eventType and returns a detach function.
// Detachment is synchronous: once the returned function runs, fn will not be
// invoked again. Node satisfies the listener target capability.
func (n *Node) Attach(eventType string, fn func(listen.Event)) func() {
	if n.listeners == nil {
		n.listeners = make(map[string][]*nodeListener)
	}
	l := &nodeListener{fn: fn}
	n.listeners[eventType] = append(n.listeners[eventType], l)
	return func() {
		l.removed = true
	}
}

// DispatchEvent invokes every listener attached for eventType, in
// attachment order. Listeners detached by an earlier listener in the same
// dispatch do not fire.
func (n *Node) DispatchEvent(eventType string, data any) {
	if n.listeners == nil {
		return
	}
	live := n.listeners[eventType]
	// Compact removed entries opportunistically.
	kept := live[:0]
	for _, l := range live {
		if !l.removed {
			kept = append(kept, l)
		}
	}
	n.listeners[eventType] = kept

	snapshot := make([]*nodeListener, len(kept))
	copy(snapshot, kept)
	ev := listen.Event{Type: eventType, Target: n, Data: data}
	for _, l := range snapshot {
		if !l.removed {
			l.fn(ev)
		}
	}
}

// Walk visits n and its subtree in document (pre-)order. Returning false
// from visit stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}
