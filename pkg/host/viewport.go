package host

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-facet/facet/pkg/errors"
)

// Default viewport dimensions for documents created without an explicit
// viewport.
const (
	DefaultViewportWidth  = 1024.0
	DefaultViewportHeight = 768.0
)

// Viewport evaluates media predicates against the current dimensions and
// notifies subscribers on resize. It implements responsive.Viewport.
type Viewport struct {
	mu       sync.RWMutex
	width    float64
	height   float64
	handlers []*viewportHandler
}

type viewportHandler struct {
	fn      func()
	removed bool
}

// NewViewport creates a viewport with the given logical dimensions.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height}
}

// Width returns the current logical width.
func (v *Viewport) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the current logical height.
func (v *Viewport) Height() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Resize updates the dimensions and notifies subscribers. Resizing to the
// current dimensions is a no-op.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	if v.width == width && v.height == height {
		v.mu.Unlock()
		return
	}
	v.width = width
	v.height = height
	// Compact removed entries opportunistically.
	kept := v.handlers[:0]
	for _, h := range v.handlers {
		if !h.removed {
			kept = append(kept, h)
		}
	}
	v.handlers = kept
	snapshot := make([]*viewportHandler, len(kept))
	copy(snapshot, kept)
	v.mu.Unlock()

	for _, h := range snapshot {
		if !h.removed {
			h.fn()
		}
	}
}

// AddHandler subscribes to viewport changes. Returns a function that
// removes the subscription; calling it more than once is harmless.
func (v *Viewport) AddHandler(fn func()) func() {
	h := &viewportHandler{fn: fn}
	v.mu.Lock()
	v.handlers = append(v.handlers, h)
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		h.removed = true
		v.mu.Unlock()
	}
}

// Matches evaluates a media condition such as "(min-width: 768px)" or
// "(min-width: 480px) and (orientation: landscape)". Conjuncts are joined
// with "and". Unknown or malformed predicates do not match and are reported
// through the error channel.
func (v *Viewport) Matches(condition string) bool {
	v.mu.RLock()
	width, height := v.width, v.height
	v.mu.RUnlock()

	for _, conjunct := range strings.Split(condition, " and ") {
		ok, err := evalPredicate(strings.TrimSpace(conjunct), width, height)
		if err != nil {
			errors.Report(&errors.FacetError{
				Op:   "host.Viewport.Matches",
				Kind: errors.KindBreakpoint,
				Err:  err,
			})
			return false
		}
		if !ok {
			return false
		}
	}
	return true
}

func evalPredicate(p string, width, height float64) (bool, error) {
	if !strings.HasPrefix(p, "(") || !strings.HasSuffix(p, ")") {
		return false, fmt.Errorf("predicate %q is not parenthesized", p)
	}
	body := p[1 : len(p)-1]
	feature, value, ok := strings.Cut(body, ":")
	if !ok {
		return false, fmt.Errorf("predicate %q has no value", p)
	}
	feature = strings.TrimSpace(feature)
	value = strings.TrimSpace(value)

	switch feature {
	case "orientation":
		switch value {
		case "landscape":
			return width >= height, nil
		case "portrait":
			return width < height, nil
		default:
			return false, fmt.Errorf("unknown orientation %q", value)
		}
	case "min-width", "max-width", "min-height", "max-height", "width", "height":
		px, err := parsePixels(value)
		if err != nil {
			return false, fmt.Errorf("predicate %q: %w", p, err)
		}
		switch feature {
		case "min-width":
			return width >= px, nil
		case "max-width":
			return width <= px, nil
		case "min-height":
			return height >= px, nil
		case "max-height":
			return height <= px, nil
		case "width":
			return width == px, nil
		default:
			return height == px, nil
		}
	default:
		return false, fmt.Errorf("unknown media feature %q", feature)
	}
}

func parsePixels(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	px, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return px, nil
}
