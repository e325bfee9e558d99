package responsive

// Matcher evaluates one media condition against the current viewport.
type Matcher interface {
	// Matches reports whether the condition currently holds,
	// e.g. Matches("(min-width: 768px)").
	Matches(condition string) bool
}

// Observable notifies subscribers when the set of matching media predicates
// may have changed. AddHandler returns a remove function; implementations
// must tolerate remove being called more than once.
type Observable interface {
	AddHandler(fn func()) (remove func())
}

// Viewport combines predicate matching with change notification. The host
// viewport service implements it.
type Viewport interface {
	Matcher
	Observable
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(condition string) bool

func (f MatcherFunc) Matches(condition string) bool {
	return f(condition)
}

// Resolver tracks the active value of one breakpoint list against a matcher.
// The initial evaluation seeds the current value silently; afterwards every
// re-evaluation that selects a different value invokes onChange(old, new).
// Re-evaluating under an unchanged viewport never invokes the callback.
type Resolver struct {
	list     *List
	matcher  Matcher
	current  any
	onChange func(old, new any)
	cancel   func()
}

// NewResolver creates a resolver and evaluates the list once to seed the
// current value. onChange may be nil.
func NewResolver(list *List, m Matcher, onChange func(old, new any)) *Resolver {
	r := &Resolver{
		list:     list,
		matcher:  m,
		onChange: onChange,
	}
	r.current = list.Resolve(m)
	return r
}

// Bind subscribes the resolver to viewport-change notifications. It
// re-evaluates immediately so a viewport change between NewResolver and Bind
// is not lost. Binding twice replaces the previous subscription.
func (r *Resolver) Bind(obs Observable) {
	r.Unbind()
	if obs == nil {
		return
	}
	r.cancel = obs.AddHandler(r.Reevaluate)
	r.Reevaluate()
}

// Unbind removes the viewport subscription, if any.
func (r *Resolver) Unbind() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Current returns the value selected by the most recent evaluation.
func (r *Resolver) Current() any {
	return r.current
}

// Reevaluate resolves the list against the matcher and fires onChange if the
// selected value differs from the current one. Idempotent under an unchanged
// viewport.
func (r *Resolver) Reevaluate() {
	next := r.list.Resolve(r.matcher)
	if next == r.current {
		return
	}
	old := r.current
	r.current = next
	if r.onChange != nil {
		r.onChange(old, next)
	}
}

// SetList replaces the breakpoint list (markup changed) and re-evaluates,
// firing onChange if the resolved value changes.
func (r *Resolver) SetList(list *List) {
	r.list = list
	r.Reevaluate()
}
