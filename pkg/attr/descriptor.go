// Package attr implements declarative attribute reflection for component
// types: descriptors declare markup attribute/property pairs, and per
// instance bindings keep the markup string and the typed property value in
// two-way sync.
package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-facet/facet/pkg/errors"
	"github.com/go-facet/facet/pkg/responsive"
)

// Kind declares how a markup string coerces to a typed property value.
type Kind int

const (
	// Bool coerces from attribute presence: any declared value, including
	// the empty string, reads as true; absence reads as false.
	Bool Kind = iota
	// Number coerces from a numeric literal to float64.
	Number
	// String uses the markup value verbatim.
	String
	// Custom delegates to the descriptor's Parse function.
	Custom
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Custom:
		return "custom"
	default:
		return "invalid"
	}
}

// ParseFunc converts a markup string to a typed value.
type ParseFunc func(raw string) (any, error)

// FormatFunc converts a typed value back to its markup string.
type FormatFunc func(value any) string

// ChangeFunc observes a committed value change on one instance. owner is the
// component instance that owns the binding.
type ChangeFunc func(owner any, old, new any)

// Options configures a descriptor. See New.
type Options struct {
	// Kind selects the coercion rule. For responsive descriptors it applies
	// to the individual breakpoint values, not the declared string.
	Kind Kind
	// Default is the typed default value, or the breakpoint-list default
	// string when Responsive is set. Bool attributes coerce from presence
	// alone, so their default may only be false or unset.
	Default any
	// Responsive marks the attribute as viewport-dependent.
	Responsive bool
	// Parse is required for Kind Custom.
	Parse ParseFunc
	// Format inverts Parse for property writes. Optional; fmt.Sprint
	// is used when unset.
	Format FormatFunc
	// OnChanged is invoked after a distinct coerced value is committed.
	OnChanged ChangeFunc
	// OnMediaChanged is invoked when the resolved value of a responsive
	// binding changes. Only valid with Responsive.
	OnMediaChanged ChangeFunc
}

// Descriptor declares one markup attribute/property pair on a component
// type. Descriptors are created at definition time, are immutable, and are
// shared by every instance of the type.
type Descriptor struct {
	name       string
	property   string
	kind       Kind
	responsive bool

	def     any    // normalized typed default (non-responsive)
	defRaw  string // declared default string (responsive)
	defList *responsive.List

	parse          ParseFunc
	format         FormatFunc
	onChanged      ChangeFunc
	onMediaChanged ChangeFunc
}

// New builds a descriptor for the kebab-case attribute name. Malformed
// descriptors are definition-time errors: invalid name, Custom kind without
// a Parse function, a default of the wrong type, OnMediaChanged without
// Responsive, or a responsive default that does not parse as a breakpoint
// list.
func New(name string, opts Options) (*Descriptor, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if opts.Kind == Custom && opts.Parse == nil {
		return nil, fmt.Errorf("attribute %q: custom kind requires a Parse function", name)
	}
	if opts.Kind < Bool || opts.Kind > Custom {
		return nil, fmt.Errorf("attribute %q: invalid kind %d", name, opts.Kind)
	}
	if opts.OnMediaChanged != nil && !opts.Responsive {
		return nil, fmt.Errorf("attribute %q: OnMediaChanged requires Responsive", name)
	}

	d := &Descriptor{
		name:           name,
		property:       kebabToCamel(name),
		kind:           opts.Kind,
		responsive:     opts.Responsive,
		parse:          opts.Parse,
		format:         opts.Format,
		onChanged:      opts.OnChanged,
		onMediaChanged: opts.OnMediaChanged,
	}

	if opts.Responsive {
		raw, ok := opts.Default.(string)
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("attribute %q: responsive descriptor requires a breakpoint-list default string", name)
		}
		list, err := responsive.Parse(raw, d.coerceValue)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: invalid responsive default: %w", name, err)
		}
		d.defRaw = raw
		d.defList = list
		return d, nil
	}

	def, err := normalizeDefault(opts.Kind, opts.Default)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	d.def = def
	return d, nil
}

// Must is New for statically known descriptors; it panics on definition
// errors.
func Must(name string, opts Options) *Descriptor {
	d, err := New(name, opts)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the kebab-case markup attribute name.
func (d *Descriptor) Name() string {
	return d.name
}

// Property returns the derived camelCase property name.
func (d *Descriptor) Property() string {
	return d.property
}

// CurrentProperty returns the name of the computed property exposing the
// resolved value of a responsive attribute ("current" + capitalized
// property). Empty for non-responsive descriptors.
func (d *Descriptor) CurrentProperty() string {
	if !d.responsive {
		return ""
	}
	return "current" + strings.ToUpper(d.property[:1]) + d.property[1:]
}

// Kind returns the value kind.
func (d *Descriptor) Kind() Kind {
	return d.kind
}

// Responsive reports whether the attribute is viewport-dependent.
func (d *Descriptor) Responsive() bool {
	return d.responsive
}

// Default returns the typed default, or the declared breakpoint-list string
// for responsive descriptors.
func (d *Descriptor) Default() any {
	if d.responsive {
		return d.defRaw
	}
	return d.def
}

// coerceValue converts one plain markup string by kind. Used for
// non-responsive values and for the individual values of a breakpoint list.
func (d *Descriptor) coerceValue(raw string) (any, error) {
	switch d.kind {
	case Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "bool", Err: err}
		}
		return v, nil
	case Number:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "number", Err: err}
		}
		return v, nil
	case String:
		return raw, nil
	case Custom:
		v, err := d.parse(raw)
		if err != nil {
			return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "custom", Err: err}
		}
		return v, nil
	default:
		return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "invalid"}
	}
}

// coerce derives the typed property value from the live markup state.
// For responsive descriptors the property reflects the declared (unresolved)
// string. The result is total for Bool and String; Number and Custom return
// a CoercionError the caller recovers from by falling back to the default.
func (d *Descriptor) coerce(raw string, present bool) (any, error) {
	if d.responsive {
		if present {
			return raw, nil
		}
		return d.defRaw, nil
	}
	switch d.kind {
	case Bool:
		// Presence is the value: declared reads true, absent reads false,
		// regardless of any default.
		return present, nil
	case Number:
		if !present {
			return d.def, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "number", Err: err}
		}
		return v, nil
	case String:
		if !present {
			return d.def, nil
		}
		return raw, nil
	default: // Custom
		if !present {
			return d.def, nil
		}
		v, err := d.parse(raw)
		if err != nil {
			return nil, &errors.CoercionError{Attribute: d.name, Raw: raw, Want: "custom", Err: err}
		}
		return v, nil
	}
}

// formatValue is the inverse of coerce: it converts a typed property value
// to its markup representation. present=false means the attribute should be
// removed (Bool false).
func (d *Descriptor) formatValue(value any) (raw string, present bool, err error) {
	if d.responsive {
		s, ok := value.(string)
		if !ok {
			return "", false, &errors.CoercionError{Attribute: d.name, Raw: fmt.Sprint(value), Want: "breakpoint-list string"}
		}
		return s, true, nil
	}
	switch d.kind {
	case Bool:
		b, ok := value.(bool)
		if !ok {
			return "", false, &errors.CoercionError{Attribute: d.name, Raw: fmt.Sprint(value), Want: "bool"}
		}
		return "", b, nil
	case Number:
		f, ok := toFloat(value)
		if !ok {
			return "", false, &errors.CoercionError{Attribute: d.name, Raw: fmt.Sprint(value), Want: "number"}
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true, nil
	case String:
		s, ok := value.(string)
		if !ok {
			return "", false, &errors.CoercionError{Attribute: d.name, Raw: fmt.Sprint(value), Want: "string"}
		}
		return s, true, nil
	default: // Custom
		if d.format != nil {
			return d.format(value), true, nil
		}
		return fmt.Sprint(value), true, nil
	}
}

func normalizeDefault(kind Kind, def any) (any, error) {
	switch kind {
	case Bool:
		if def == nil {
			return false, nil
		}
		b, ok := def.(bool)
		if !ok {
			return nil, fmt.Errorf("default %v is not a bool", def)
		}
		if b {
			return nil, fmt.Errorf("bool default must be false: an absent attribute always reads false")
		}
		return false, nil
	case Number:
		if def == nil {
			return float64(0), nil
		}
		f, ok := toFloat(def)
		if !ok {
			return nil, fmt.Errorf("default %v is not a number", def)
		}
		return f, nil
	case String:
		if def == nil {
			return "", nil
		}
		s, ok := def.(string)
		if !ok {
			return nil, fmt.Errorf("default %v is not a string", def)
		}
		return s, nil
	default: // Custom
		return def, nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}

// validateName enforces kebab-case: lowercase segments of letters and
// digits, separated by single hyphens, starting with a letter.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("attribute name is empty")
	}
	for _, segment := range strings.Split(name, "-") {
		if segment == "" {
			return fmt.Errorf("attribute %q: empty name segment", name)
		}
		if segment[0] >= '0' && segment[0] <= '9' {
			return fmt.Errorf("attribute %q: name segment starts with a digit", name)
		}
		for _, r := range segment {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
				return fmt.Errorf("attribute %q: invalid character %q", name, r)
			}
		}
	}
	return nil
}

// kebabToCamel derives the property name: "slides-visible" -> "slidesVisible".
func kebabToCamel(name string) string {
	segments := strings.Split(name, "-")
	var sb strings.Builder
	sb.WriteString(segments[0])
	for _, segment := range segments[1:] {
		sb.WriteString(strings.ToUpper(segment[:1]))
		sb.WriteString(segment[1:])
	}
	return sb.String()
}
