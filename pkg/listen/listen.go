// Package listen manages the lifecycle of event subscriptions owned by a
// single component instance.
//
// Handles are created disabled and attach their handler to every target only
// while enabled. Bulk operations on the owning Bag set a baseline for every
// handle; bulk always overrides earlier individual toggles (last write wins).
package listen

// Event is delivered to handlers when a target dispatches an event.
type Event struct {
	// Type is the event type the handler subscribed to.
	Type string
	// Target is the node that dispatched the event.
	Target Target
	// Data is an optional event payload.
	Data any
}

// Handler is invoked with the owning component instance as its first
// argument, regardless of which target dispatched the event.
type Handler func(owner any, ev Event)

// Target is the capability a node must offer for listener attachment.
// Attach registers fn for eventType and returns a detach function.
// Detach must be synchronous: once it returns, fn will not be invoked again.
type Target interface {
	Attach(eventType string, fn func(Event)) (detach func())
}

// Handle is one registered event subscription. It is owned exclusively by
// the Bag that created it and must only be used from the host event loop.
type Handle struct {
	bag       *Bag
	targets   []Target
	eventType string
	handler   Handler
	enabled   bool
	inert     bool
	detachers []func()
}

// Enabled reports whether the handler is currently attached.
func (h *Handle) Enabled() bool {
	return h.enabled
}

// Enable attaches the handler to every target. Calling Enable on an
// already-enabled handle is a no-op.
func (h *Handle) Enable() {
	h.set(true)
}

// Disable detaches the handler from every target. Detachment completes
// before Disable returns: no dispatch for this handler can occur afterward.
// Calling Disable on an already-disabled handle is a no-op.
func (h *Handle) Disable() {
	h.set(false)
}

func (h *Handle) set(enabled bool) {
	if h.inert || h.enabled == enabled {
		return
	}
	if enabled {
		h.attach()
	} else {
		h.detach()
	}
	h.enabled = enabled
}

func (h *Handle) attach() {
	h.detachers = make([]func(), 0, len(h.targets))
	for _, target := range h.targets {
		detach := target.Attach(h.eventType, h.dispatch)
		if detach != nil {
			h.detachers = append(h.detachers, detach)
		}
	}
}

func (h *Handle) detach() {
	for _, detach := range h.detachers {
		detach()
	}
	h.detachers = nil
}

func (h *Handle) dispatch(ev Event) {
	if h.handler != nil {
		h.handler(h.bag.owner, ev)
	}
}

// Bag owns every listener handle created by one component instance.
type Bag struct {
	owner   any
	handles []*Handle
	// Notify receives listener registration problems (nil or missing
	// targets). Optional; a nil Notify drops them silently.
	Notify func(err error)

	disposed bool
}

// NewBag creates a listener bag. owner is passed to every handler as its
// invocation context.
func NewBag(owner any) *Bag {
	return &Bag{owner: owner}
}

// Owner returns the component instance that owns this bag.
func (b *Bag) Owner() any {
	return b.owner
}

// Listen registers a handler for eventType on the given targets and returns
// the handle, created disabled. Nil targets are dropped; if no usable target
// remains the returned handle is inert: Enable and Disable have no effect.
func (b *Bag) Listen(eventType string, handler Handler, targets ...Target) *Handle {
	usable := make([]Target, 0, len(targets))
	dropped := 0
	for _, t := range targets {
		if t == nil {
			dropped++
			continue
		}
		usable = append(usable, t)
	}
	if dropped > 0 && b.Notify != nil {
		b.Notify(&MissingTargetError{EventType: eventType, Dropped: dropped})
	}

	h := &Handle{
		bag:       b,
		targets:   usable,
		eventType: eventType,
		handler:   handler,
		inert:     len(usable) == 0 || b.disposed,
	}
	if !b.disposed {
		b.handles = append(b.handles, h)
	}
	return h
}

// EnableAll enables every handle in the bag, including handles individually
// disabled earlier: bulk operations set the baseline for all handles.
func (b *Bag) EnableAll() {
	for _, h := range b.handles {
		h.set(true)
	}
}

// DisableAll disables every handle in the bag, including handles
// individually enabled earlier.
func (b *Bag) DisableAll() {
	for _, h := range b.handles {
		h.set(false)
	}
}

// Dispose detaches every handle and marks the bag unusable. Handles created
// after Dispose are inert. Dispose is idempotent.
func (b *Bag) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, h := range b.handles {
		h.set(false)
		h.inert = true
	}
	b.handles = nil
}

// Len returns the number of live handles in the bag.
func (b *Bag) Len() int {
	return len(b.handles)
}

// MissingTargetError reports Listen calls that received nil targets.
type MissingTargetError struct {
	EventType string
	Dropped   int
}

func (e *MissingTargetError) Error() string {
	return "listen: " + e.EventType + ": nil target dropped"
}
