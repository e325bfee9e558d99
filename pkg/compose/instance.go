package compose

import (
	"github.com/go-facet/facet/pkg/attr"
	"github.com/go-facet/facet/pkg/errors"
	"github.com/go-facet/facet/pkg/host"
	"github.com/go-facet/facet/pkg/listen"
	"github.com/go-facet/facet/pkg/responsive"
)

// Instance is one live component on one markup node. It implements the
// host component contract; all host-invoked callbacks are panic-guarded so
// an internal failure can never abort host lifecycle dispatch.
type Instance struct {
	typ       *ComponentType
	node      *host.Node
	attrs     *attr.Bindings
	bag       *listen.Bag
	connected bool
}

// Upgrade creates the component instance for a node. The host invokes it
// once per instance and follows up with Connected.
func (t *ComponentType) Upgrade(n *host.Node) host.Component {
	inst := &Instance{typ: t, node: n}
	inst.attrs = attr.NewBindings(inst, t.tag, t.descriptors)
	inst.bag = listen.NewBag(inst)
	inst.bag.Notify = func(err error) {
		errors.Report(&errors.FacetError{
			Op:        "compose.Instance.Listen",
			Kind:      errors.KindListener,
			Component: t.tag,
			Err:       err,
		})
	}
	return inst
}

// Type returns the component type of this instance.
func (i *Instance) Type() *ComponentType {
	return i.typ
}

// Node returns the markup node this instance is mounted on.
func (i *Instance) Node() *host.Node {
	return i.node
}

// Connected implements the host creation notification: attribute bindings
// are initialized from markup and defaults, responsive bindings subscribe
// to the document viewport, then the "created" operation runs.
func (i *Instance) Connected() {
	defer errors.Recover("compose.Instance.Connected")
	if i.connected {
		return
	}
	i.connected = true

	var vp responsive.Viewport
	if doc := i.node.Document(); doc != nil && doc.Viewport() != nil {
		vp = doc.Viewport()
	}
	i.attrs.Bind(i.node, vp)
	i.Invoke(OpCreated)
}

// AttributeChanged implements the host attribute-change notification.
func (i *Instance) AttributeChanged(name, oldValue, newValue string, present bool) {
	defer errors.Recover("compose.Instance.AttributeChanged")
	if !i.connected {
		return
	}
	i.attrs.AttributeChanged(name, newValue, present)
}

// Disconnected implements the host teardown notification: the "disposed"
// operation runs, then every listener handle is detached and every viewport
// subscription released.
func (i *Instance) Disconnected() {
	defer errors.Recover("compose.Instance.Disconnected")
	if !i.connected {
		return
	}
	i.Invoke(OpDisposed)
	i.bag.Dispose()
	i.attrs.Unbind()
	i.connected = false
}

// Invoke runs a named operation from the merged behavior table. Unknown
// operations return nil.
func (i *Instance) Invoke(name string, args ...any) any {
	op, ok := i.typ.ops[name]
	if !ok {
		return nil
	}
	return op(i, args...)
}

// Get returns a typed property value. name may be the attribute name, the
// property name, or a responsive "currentX" computed property.
func (i *Instance) Get(name string) any {
	return i.attrs.Get(name)
}

// Set writes a property value; the markup attribute is updated to match
// through the descriptor's coercion path.
func (i *Instance) Set(name string, value any) {
	i.attrs.Set(name, value)
}

// Current returns the resolved value of a responsive attribute.
func (i *Instance) Current(name string) any {
	return i.attrs.Current(name)
}

// Attributes exposes the live binding set.
func (i *Instance) Attributes() *attr.Bindings {
	return i.attrs
}

// Listen registers an event handler owned by this instance, created
// disabled. With no explicit targets the instance's own node is the target.
// The handler always receives this instance, regardless of which target
// dispatched the event.
func (i *Instance) Listen(eventType string, handler func(self *Instance, ev listen.Event), targets ...listen.Target) *listen.Handle {
	if len(targets) == 0 {
		targets = []listen.Target{i.node}
	}
	return i.bag.Listen(eventType, func(owner any, ev listen.Event) {
		handler(owner.(*Instance), ev)
	}, targets...)
}

// Listeners returns the instance's listener bag.
func (i *Instance) Listeners() *listen.Bag {
	return i.bag
}

// EnableListeners enables every listener handle the instance owns,
// overriding earlier individual toggles.
func (i *Instance) EnableListeners() {
	i.bag.EnableAll()
}

// DisableListeners disables every listener handle the instance owns,
// overriding earlier individual toggles.
func (i *Instance) DisableListeners() {
	i.bag.DisableAll()
}
