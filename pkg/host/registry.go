package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registration errors.
var (
	ErrDuplicateTag = errors.New("tag already registered")
	ErrEmptyTag     = errors.New("empty tag name")
)

// Definition is a registered component type: the single point of contact
// between the composition engine and the host.
type Definition interface {
	// Tag returns the unique markup tag the definition answers to.
	Tag() string
	// Upgrade creates the component instance for one node. The host calls
	// Connected on the result after upgrading.
	Upgrade(n *Node) Component
}

// Registry maps tag names to component definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// DefaultRegistry is the process-wide registry used by compose.Compose and
// NewDocument when no explicit registry is given.
var DefaultRegistry = NewRegistry()

// Define registers a component definition. Registering a tag twice is a
// definition-time error.
func (r *Registry) Define(def Definition) error {
	tag := def.Tag()
	if tag == "" {
		return ErrEmptyTag
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	r.defs[tag] = def
	return nil
}

// Lookup returns the definition registered for tag.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[tag]
	return def, ok
}

// Defined reports whether tag is registered.
func (r *Registry) Defined(tag string) bool {
	_, ok := r.Lookup(tag)
	return ok
}

// Tags returns the registered tag names, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ResetForTest clears the default registry. This should only be called from
// tests.
func ResetForTest() {
	DefaultRegistry.mu.Lock()
	DefaultRegistry.defs = make(map[string]Definition)
	DefaultRegistry.mu.Unlock()
}
