package attr

import (
	"reflect"

	"github.com/go-facet/facet/pkg/errors"
	"github.com/go-facet/facet/pkg/responsive"
)

// Element is the capability an instance's markup node must offer for
// attribute reflection. The host node implements it.
type Element interface {
	// Attribute returns the current markup value of name and whether the
	// attribute is present.
	Attribute(name string) (value string, present bool)
	// SetAttribute writes name to value, creating the attribute if absent.
	SetAttribute(name, value string)
	// RemoveAttribute deletes the attribute if present.
	RemoveAttribute(name string)
}

// binding is the live state of one attribute on one instance.
type binding struct {
	desc     *Descriptor
	raw      string
	present  bool
	typed    any
	resolver *responsive.Resolver
}

// Bindings holds the live attribute state for one component instance.
// It is owned exclusively by that instance and must only be used from the
// host event loop.
type Bindings struct {
	owner     any
	component string
	el        Element
	vp        responsive.Viewport
	list      []*binding
	byAttr    map[string]*binding
	byProp    map[string]*binding
	byCurrent map[string]*binding
	bound     bool
}

// NewBindings creates the binding set for one instance. owner is passed to
// every OnChanged/OnMediaChanged callback; component tags error reports.
func NewBindings(owner any, component string, descs []*Descriptor) *Bindings {
	b := &Bindings{
		owner:     owner,
		component: component,
		byAttr:    make(map[string]*binding, len(descs)),
		byProp:    make(map[string]*binding, len(descs)),
		byCurrent: make(map[string]*binding),
	}
	for _, desc := range descs {
		bd := &binding{desc: desc}
		b.list = append(b.list, bd)
		b.byAttr[desc.Name()] = bd
		b.byProp[desc.Property()] = bd
		if desc.Responsive() {
			b.byCurrent[desc.CurrentProperty()] = bd
		}
	}
	return b
}

// Bind initializes every binding from el's markup (falling back to the
// descriptor default) and, for responsive descriptors, subscribes to
// viewport-change notifications. vp may be nil: responsive bindings then
// resolve to their fallback and observe nothing.
func (b *Bindings) Bind(el Element, vp responsive.Viewport) {
	b.el = el
	b.vp = vp
	b.bound = true

	for _, bd := range b.list {
		bd.raw, bd.present = el.Attribute(bd.desc.Name())
		bd.typed = b.coerceOrFallback(bd.desc, bd.raw, bd.present)

		if bd.desc.Responsive() {
			declared, _ := bd.typed.(string)
			list := b.parseList(bd.desc, declared)
			var matcher responsive.Matcher
			if vp != nil {
				matcher = vp
			}
			desc := bd.desc
			bd.resolver = responsive.NewResolver(list, matcher, func(old, new any) {
				if desc.onMediaChanged != nil {
					desc.onMediaChanged(b.owner, old, new)
				}
			})
			if vp != nil {
				bd.resolver.Bind(vp)
			}
		}
	}
}

// Unbind releases every viewport subscription. The last typed values stay
// readable; markup writes stop propagating.
func (b *Bindings) Unbind() {
	for _, bd := range b.list {
		if bd.resolver != nil {
			bd.resolver.Unbind()
		}
	}
	b.bound = false
	b.el = nil
	b.vp = nil
}

// AttributeChanged ingests one host-level markup mutation. It recomputes the
// typed value, fires OnChanged at most once per distinct coerced value, and
// for responsive descriptors re-parses the breakpoint list and re-evaluates.
// Runs synchronously; by the time it returns the typed value is committed
// and all callbacks have fired.
func (b *Bindings) AttributeChanged(name, newRaw string, present bool) {
	bd := b.byAttr[name]
	if bd == nil {
		return
	}
	bd.raw = newRaw
	bd.present = present

	newTyped := b.coerceOrFallback(bd.desc, newRaw, present)
	if !reflect.DeepEqual(newTyped, bd.typed) {
		old := bd.typed
		bd.typed = newTyped
		if bd.desc.onChanged != nil {
			bd.desc.onChanged(b.owner, old, newTyped)
		}
	}

	if bd.desc.Responsive() && bd.resolver != nil {
		declared, _ := bd.typed.(string)
		bd.resolver.SetList(b.parseList(bd.desc, declared))
	}
}

// Has reports whether name (attribute or property form) is declared.
func (b *Bindings) Has(name string) bool {
	return b.lookup(name) != nil
}

// Get returns the typed property value. name may be the kebab-case
// attribute name, the camelCase property name, or — for responsive
// descriptors — the computed "currentX" property name, which returns the
// resolved value instead of the declared one. Unknown names return nil.
func (b *Bindings) Get(name string) any {
	if bd, ok := b.byCurrent[name]; ok {
		return b.resolved(bd)
	}
	bd := b.lookup(name)
	if bd == nil {
		return nil
	}
	return bd.typed
}

// Current returns the resolved value of a responsive attribute. For
// non-responsive attributes it returns the typed value.
func (b *Bindings) Current(name string) any {
	bd := b.lookup(name)
	if bd == nil {
		return nil
	}
	if bd.desc.Responsive() {
		return b.resolved(bd)
	}
	return bd.typed
}

// Set writes a property value programmatically. The value travels the same
// coercion path in reverse and the markup attribute is updated to match;
// the resulting mutation notification recomputes the typed value and fires
// OnChanged. Invalid values are reported and ignored.
func (b *Bindings) Set(name string, value any) {
	bd := b.lookup(name)
	if bd == nil {
		return
	}
	raw, present, err := bd.desc.formatValue(value)
	if err != nil {
		errors.Report(&errors.FacetError{
			Op:        "attr.Bindings.Set",
			Kind:      errors.KindCoercion,
			Component: b.component,
			Attribute: bd.desc.Name(),
			Err:       err,
		})
		return
	}

	if b.bound && b.el != nil {
		if present {
			b.el.SetAttribute(bd.desc.Name(), raw)
		} else {
			b.el.RemoveAttribute(bd.desc.Name())
		}
	}
	// Hosts notify mutations synchronously, making this a no-op; it keeps
	// unbound or non-notifying elements in sync.
	b.AttributeChanged(bd.desc.Name(), raw, present)
}

// Descriptors returns the descriptors backing this set, in declaration
// order.
func (b *Bindings) Descriptors() []*Descriptor {
	descs := make([]*Descriptor, len(b.list))
	for i, bd := range b.list {
		descs[i] = bd.desc
	}
	return descs
}

func (b *Bindings) lookup(name string) *binding {
	if bd, ok := b.byAttr[name]; ok {
		return bd
	}
	return b.byProp[name]
}

func (b *Bindings) resolved(bd *binding) any {
	if bd.resolver != nil {
		return bd.resolver.Current()
	}
	// Not bound yet: resolve the default list with no viewport.
	return b.parseList(bd.desc, bd.desc.defRaw).Resolve(nil)
}

// coerceOrFallback applies the descriptor's coercion rule and recovers from
// failures by reporting through the error channel and substituting the
// default. Never fails, never panics into host dispatch.
func (b *Bindings) coerceOrFallback(desc *Descriptor, raw string, present bool) any {
	typed, err := desc.coerce(raw, present)
	if err != nil {
		errors.Report(&errors.FacetError{
			Op:        "attr.Bindings.coerce",
			Kind:      errors.KindCoercion,
			Component: b.component,
			Attribute: desc.Name(),
			Err:       err,
		})
		return desc.Default()
	}
	return typed
}

// parseList parses a declared breakpoint-list string, recovering from
// malformed markup by treating the whole string as the unconditional
// fallback value (coerced by kind when possible, verbatim otherwise).
// The descriptor's own default re-uses its pre-parsed list.
func (b *Bindings) parseList(desc *Descriptor, declared string) *responsive.List {
	if declared == desc.defRaw && desc.defList != nil {
		return desc.defList
	}
	list, err := responsive.Parse(declared, desc.coerceValue)
	if err != nil {
		errors.Report(&errors.FacetError{
			Op:        "attr.Bindings.parseList",
			Kind:      errors.KindBreakpoint,
			Component: b.component,
			Attribute: desc.Name(),
			Err:       &errors.BreakpointError{Attribute: desc.Name(), Raw: declared, Err: err},
		})
		if v, cerr := desc.coerceValue(declared); cerr == nil {
			return responsive.Fallback(v)
		}
		return responsive.Fallback(declared)
	}
	return list
}
