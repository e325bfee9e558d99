// Package compose builds component types by layering a definition over a
// base type's behavior. Delegation to the base is always explicit: the
// definition receives the resolved base behavior table as a value and
// invokes entries from it by name, the "super" pattern, rather than relying
// on implicit virtual dispatch.
package compose

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-facet/facet/pkg/attr"
	"github.com/go-facet/facet/pkg/host"
)

// Definition errors.
var (
	ErrUnresolvedBase = stderrors.New("unresolved base type")
	ErrNilDefinition  = stderrors.New("nil definition function")
	ErrInvalidTag     = stderrors.New("invalid tag name")
)

// DefinitionFunc populates a new component type. surface is the mutable
// override surface (behavior table and attribute descriptors, initially
// empty); base is the read-only resolved behavior table of the type being
// extended, for explicit delegation.
type DefinitionFunc func(surface *Surface, base Base)

// ComponentType is a named, composable unit of behavior. It is created once
// at definition time and immutable thereafter; its descriptor table is
// shared by every instance.
type ComponentType struct {
	tag         string
	nativeTag   string
	base        *ComponentType
	ops         map[string]Op
	descriptors []*attr.Descriptor
}

// Compose builds a component type extending base — either a *ComponentType
// or a native element tag string — and registers it with the default host
// registry under tag. The definition function runs exactly once, at
// definition time. All failures are definition errors: no type is produced
// and nothing is registered.
func Compose(base any, tag string, def DefinitionFunc) (*ComponentType, error) {
	return ComposeIn(host.DefaultRegistry, base, tag, def)
}

// ComposeIn is Compose against an explicit registry.
func ComposeIn(registry *host.Registry, base any, tag string, def DefinitionFunc) (*ComponentType, error) {
	if err := ValidateTag(tag); err != nil {
		return nil, err
	}
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilDefinition, tag)
	}

	ct := &ComponentType{tag: tag}
	baseOps := map[string]Op{}
	switch b := base.(type) {
	case *ComponentType:
		if b == nil {
			return nil, fmt.Errorf("%w: nil base for %q", ErrUnresolvedBase, tag)
		}
		ct.base = b
		ct.nativeTag = b.nativeTag
		baseOps = b.ops
	case string:
		if strings.TrimSpace(b) == "" {
			return nil, fmt.Errorf("%w: empty native tag for %q", ErrUnresolvedBase, tag)
		}
		ct.nativeTag = b
	case nil:
		return nil, fmt.Errorf("%w: nil base for %q", ErrUnresolvedBase, tag)
	default:
		return nil, fmt.Errorf("%w: cannot extend %T", ErrUnresolvedBase, base)
	}

	surface := newSurface()
	def(surface, Base{ops: baseOps})
	if err := surface.err(); err != nil {
		return nil, fmt.Errorf("definition of %q: %w", tag, err)
	}

	// Merge behavior tables: override wins per name.
	ct.ops = make(map[string]Op, len(baseOps)+len(surface.ops))
	for name, op := range baseOps {
		ct.ops[name] = op
	}
	for name, op := range surface.ops {
		ct.ops[name] = op
	}

	ct.descriptors = mergeDescriptors(ct.base, surface.descriptors)

	if err := registry.Define(ct); err != nil {
		return nil, fmt.Errorf("definition of %q: %w", tag, err)
	}
	return ct, nil
}

// MustCompose is Compose for statically known definitions; it panics on
// definition errors.
func MustCompose(base any, tag string, def DefinitionFunc) *ComponentType {
	ct, err := Compose(base, tag, def)
	if err != nil {
		panic(err)
	}
	return ct
}

// mergeDescriptors builds the final descriptor list: the base list in
// declaration order, with override entries replacing by name or appended.
func mergeDescriptors(base *ComponentType, overrides []*attr.Descriptor) []*attr.Descriptor {
	var merged []*attr.Descriptor
	if base != nil {
		merged = append(merged, base.descriptors...)
	}
	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.Name()] = i
	}
	for _, d := range overrides {
		if i, ok := index[d.Name()]; ok {
			merged[i] = d
			continue
		}
		index[d.Name()] = len(merged)
		merged = append(merged, d)
	}
	return merged
}

// Tag returns the unique tag the type is registered under.
func (t *ComponentType) Tag() string {
	return t.tag
}

// Extends returns the native element tag at the root of the extension
// chain.
func (t *ComponentType) Extends() string {
	return t.nativeTag
}

// Base returns the extended component type, or nil when the type extends a
// native tag directly.
func (t *ComponentType) Base() *ComponentType {
	return t.base
}

// Descriptors returns the merged attribute descriptors in declaration
// order.
func (t *ComponentType) Descriptors() []*attr.Descriptor {
	out := make([]*attr.Descriptor, len(t.descriptors))
	copy(out, t.descriptors)
	return out
}

// HasOp reports whether the merged behavior table defines name.
func (t *ComponentType) HasOp(name string) bool {
	_, ok := t.ops[name]
	return ok
}

// ValidateTag enforces host tag-name rules: lowercase kebab-case with at
// least one hyphen, e.g. "x-carousel".
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTag)
	}
	if !strings.Contains(tag, "-") {
		return fmt.Errorf("%w: %q must contain a hyphen", ErrInvalidTag, tag)
	}
	for _, segment := range strings.Split(tag, "-") {
		if segment == "" {
			return fmt.Errorf("%w: %q has an empty segment", ErrInvalidTag, tag)
		}
		for _, r := range segment {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
				return fmt.Errorf("%w: %q contains %q", ErrInvalidTag, tag, r)
			}
		}
	}
	if tag[0] >= '0' && tag[0] <= '9' {
		return fmt.Errorf("%w: %q starts with a digit", ErrInvalidTag, tag)
	}
	return nil
}
