package attr

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-facet/facet/pkg/errors"
)

// fakeElement is an attribute store that notifies its bindings on mutation,
// the way a host node does.
type fakeElement struct {
	attrs    map[string]string
	bindings *Bindings
}

func newFakeElement(attrs map[string]string) *fakeElement {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &fakeElement{attrs: attrs}
}

func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) SetAttribute(name, value string) {
	old, present := e.attrs[name]
	e.attrs[name] = value
	if e.bindings != nil && (!present || old != value) {
		e.bindings.AttributeChanged(name, value, true)
	}
}

func (e *fakeElement) RemoveAttribute(name string) {
	if _, present := e.attrs[name]; !present {
		return
	}
	delete(e.attrs, name)
	if e.bindings != nil {
		e.bindings.AttributeChanged(name, "", false)
	}
}

// fakeViewport mirrors the one in pkg/responsive tests.
type fakeViewport struct {
	matching map[string]bool
	handlers []func()
}

func newFakeViewport(matching ...string) *fakeViewport {
	vp := &fakeViewport{matching: make(map[string]bool)}
	for _, c := range matching {
		vp.matching[c] = true
	}
	return vp
}

func (vp *fakeViewport) Matches(condition string) bool { return vp.matching[condition] }

func (vp *fakeViewport) AddHandler(fn func()) func() {
	vp.handlers = append(vp.handlers, fn)
	index := len(vp.handlers) - 1
	return func() {
		if index < len(vp.handlers) {
			vp.handlers[index] = nil
		}
	}
}

func (vp *fakeViewport) change(matching ...string) {
	vp.matching = make(map[string]bool)
	for _, c := range matching {
		vp.matching[c] = true
	}
	for _, fn := range vp.handlers {
		if fn != nil {
			fn()
		}
	}
}

type silentHandler struct {
	errors []*errors.FacetError
}

func (h *silentHandler) HandleError(err *errors.FacetError) { h.errors = append(h.errors, err) }
func (h *silentHandler) HandlePanic(err *errors.PanicError) {}

func bindSet(t *testing.T, el *fakeElement, vp *fakeViewport, descs ...*Descriptor) *Bindings {
	t.Helper()
	b := NewBindings("owner", "x-test", descs)
	el.bindings = b
	if vp != nil {
		b.Bind(el, vp)
	} else {
		b.Bind(el, nil)
	}
	return b
}

func TestNew_DerivesPropertyName(t *testing.T) {
	d, err := New("slides-visible", Options{Kind: Number, Responsive: true, Default: "(min-width: 768px) 3, 1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.Property() != "slidesVisible" {
		t.Errorf("property = %q, want slidesVisible", d.Property())
	}
	if d.CurrentProperty() != "currentSlidesVisible" {
		t.Errorf("current property = %q, want currentSlidesVisible", d.CurrentProperty())
	}
}

func TestNew_DefinitionErrors(t *testing.T) {
	cases := []struct {
		name string
		attr string
		opts Options
	}{
		{"empty name", "", Options{Kind: String}},
		{"uppercase name", "Delay", Options{Kind: String}},
		{"double hyphen", "a--b", Options{Kind: String}},
		{"digit segment", "a-1b", Options{Kind: String}},
		{"custom without parse", "x", Options{Kind: Custom}},
		{"number default wrong type", "x", Options{Kind: Number, Default: "nope"}},
		{"bool default wrong type", "x", Options{Kind: Bool, Default: 1}},
		{"bool default true", "x", Options{Kind: Bool, Default: true}},
		{"media callback without responsive", "x", Options{Kind: Number, OnMediaChanged: func(any, any, any) {}}},
		{"responsive default missing", "x", Options{Kind: Number, Responsive: true}},
		{"responsive default malformed", "x", Options{Kind: Number, Responsive: true, Default: "(min-width: 768px) 3"}},
		{"responsive default bad value", "x", Options{Kind: Number, Responsive: true, Default: "(min-width: 768px) three, 1"}},
	}
	for _, tc := range cases {
		if _, err := New(tc.attr, tc.opts); err == nil {
			t.Errorf("%s: expected definition error", tc.name)
		}
	}
}

func TestBind_BoolPresenceSemantics(t *testing.T) {
	autoplay := Must("autoplay", Options{Kind: Bool})

	present := bindSet(t, newFakeElement(map[string]string{"autoplay": ""}), nil, autoplay)
	if present.Get("autoplay") != true {
		t.Error("present attribute with empty value must read true")
	}

	withContent := bindSet(t, newFakeElement(map[string]string{"autoplay": "false"}), nil, autoplay)
	if withContent.Get("autoplay") != true {
		t.Error("presence coerces to true regardless of string content")
	}

	absent := bindSet(t, newFakeElement(nil), nil, autoplay)
	if absent.Get("autoplay") != false {
		t.Error("absent attribute must read false")
	}

	// An explicit false default changes nothing; a true default is rejected
	// at definition time, so absence can never read true.
	explicit := Must("loop", Options{Kind: Bool, Default: false})
	if bindSet(t, newFakeElement(nil), nil, explicit).Get("loop") != false {
		t.Error("absent attribute must read false with an explicit default")
	}
}

func TestBind_NumberDefaultAndMarkup(t *testing.T) {
	delay := Must("delay", Options{Kind: Number, Default: 3000})

	fromDefault := bindSet(t, newFakeElement(nil), nil, delay)
	if got := fromDefault.Get("delay"); got != 3000.0 {
		t.Errorf("default: got %v (%T), want 3000", got, got)
	}

	fromMarkup := bindSet(t, newFakeElement(map[string]string{"delay": "5000"}), nil, delay)
	if got := fromMarkup.Get("delay"); got != 5000.0 {
		t.Errorf("markup: got %v (%T), want 5000", got, got)
	}
}

func TestBind_NumberCoercionFallsBackAndReports(t *testing.T) {
	handler := &silentHandler{}
	prev := errors.SetHandler(handler)
	defer errors.SetHandler(prev)

	delay := Must("delay", Options{Kind: Number, Default: 3000})
	b := bindSet(t, newFakeElement(map[string]string{"delay": "fast"}), nil, delay)

	if got := b.Get("delay"); got != 3000.0 {
		t.Errorf("got %v, want fallback 3000", got)
	}
	if len(handler.errors) != 1 {
		t.Fatalf("expected 1 coercion report, got %d", len(handler.errors))
	}
	if handler.errors[0].Kind != errors.KindCoercion {
		t.Errorf("kind = %v, want coercion", handler.errors[0].Kind)
	}
	if handler.errors[0].Attribute != "delay" {
		t.Errorf("attribute = %q, want delay", handler.errors[0].Attribute)
	}
}

func TestBind_CustomParser(t *testing.T) {
	duration := Must("duration", Options{
		Kind:    Custom,
		Default: 300 * time.Millisecond,
		Parse: func(raw string) (any, error) {
			return time.ParseDuration(raw)
		},
		Format: func(v any) string {
			return v.(time.Duration).String()
		},
	})

	b := bindSet(t, newFakeElement(map[string]string{"duration": "2s"}), nil, duration)
	if got := b.Get("duration"); got != 2*time.Second {
		t.Errorf("got %v, want 2s", got)
	}

	handler := &silentHandler{}
	prev := errors.SetHandler(handler)
	defer errors.SetHandler(prev)

	bad := bindSet(t, newFakeElement(map[string]string{"duration": "soon"}), nil, duration)
	if got := bad.Get("duration"); got != 300*time.Millisecond {
		t.Errorf("got %v, want fallback 300ms", got)
	}
	if len(handler.errors) != 1 {
		t.Errorf("expected parse failure to be reported, got %d reports", len(handler.errors))
	}
}

func TestAttributeChanged_FiresOncePerDistinctValue(t *testing.T) {
	var calls [][2]any
	delay := Must("delay", Options{
		Kind:    Number,
		Default: 3000,
		OnChanged: func(owner any, old, new any) {
			calls = append(calls, [2]any{old, new})
		},
	})

	el := newFakeElement(nil)
	b := bindSet(t, el, nil, delay)
	_ = b

	el.SetAttribute("delay", "5000")
	if len(calls) != 1 || calls[0] != [2]any{3000.0, 5000.0} {
		t.Fatalf("expected one OnChanged(3000, 5000), got %v", calls)
	}

	// Same markup value again: no callback.
	el.SetAttribute("delay", "5000")
	if len(calls) != 1 {
		t.Errorf("identical markup value fired OnChanged %d extra times", len(calls)-1)
	}

	// Different markup, same coerced value: no callback.
	el.SetAttribute("delay", "5000.0")
	if len(calls) != 1 {
		t.Errorf("same coerced value fired OnChanged %d extra times", len(calls)-1)
	}

	el.RemoveAttribute("delay")
	if len(calls) != 2 || calls[1] != [2]any{5000.0, 3000.0} {
		t.Errorf("removal must fall back to default, calls = %v", calls)
	}
}

func TestSet_TwoWaySync(t *testing.T) {
	delay := Must("delay", Options{Kind: Number, Default: 3000})
	autoplay := Must("autoplay", Options{Kind: Bool})
	label := Must("label", Options{Kind: String, Default: "untitled"})

	el := newFakeElement(nil)
	b := bindSet(t, el, nil, delay, autoplay, label)

	b.Set("delay", 4500)
	if el.attrs["delay"] != "4500" {
		t.Errorf("markup delay = %q, want 4500", el.attrs["delay"])
	}
	if b.Get("delay") != 4500.0 {
		t.Errorf("property delay = %v, want 4500", b.Get("delay"))
	}

	// Property form works too.
	b.Set("autoplay", true)
	if _, present := el.attrs["autoplay"]; !present {
		t.Error("setting a Bool property true must add the attribute")
	}
	b.Set("autoplay", false)
	if _, present := el.attrs["autoplay"]; present {
		t.Error("setting a Bool property false must remove the attribute")
	}

	b.Set("label", "hero")
	if el.attrs["label"] != "hero" || b.Get("label") != "hero" {
		t.Errorf("label = %q / %v", el.attrs["label"], b.Get("label"))
	}
}

func TestSet_InvalidValueReportedAndIgnored(t *testing.T) {
	handler := &silentHandler{}
	prev := errors.SetHandler(handler)
	defer errors.SetHandler(prev)

	delay := Must("delay", Options{Kind: Number, Default: 3000})
	el := newFakeElement(nil)
	b := bindSet(t, el, nil, delay)

	b.Set("delay", "not a number")
	if got := b.Get("delay"); got != 3000.0 {
		t.Errorf("invalid Set must leave the value unchanged, got %v", got)
	}
	if len(handler.errors) != 1 {
		t.Errorf("expected 1 report, got %d", len(handler.errors))
	}
}

func TestResponsive_DeclaredVersusResolved(t *testing.T) {
	var mediaCalls [][2]any
	slides := Must("slides-visible", Options{
		Kind:       Number,
		Responsive: true,
		Default:    "(min-width: 768px) 3, 1",
		OnMediaChanged: func(owner any, old, new any) {
			mediaCalls = append(mediaCalls, [2]any{old, new})
		},
	})

	vp := newFakeViewport() // narrow
	el := newFakeElement(nil)
	b := bindSet(t, el, vp, slides)

	if got := b.Get("slides-visible"); got != "(min-width: 768px) 3, 1" {
		t.Errorf("property must reflect the declared value, got %v", got)
	}
	if got := b.Current("slides-visible"); got != 1.0 {
		t.Errorf("resolved = %v, want 1 below the breakpoint", got)
	}
	if got := b.Get("currentSlidesVisible"); got != 1.0 {
		t.Errorf("computed current property = %v, want 1", got)
	}
	if len(mediaCalls) != 0 {
		t.Fatalf("initial bind must not fire OnMediaChanged, got %v", mediaCalls)
	}

	vp.change("(min-width: 768px)")
	if got := b.Current("slides-visible"); got != 3.0 {
		t.Errorf("resolved = %v, want 3 above the breakpoint", got)
	}
	if len(mediaCalls) != 1 || mediaCalls[0] != [2]any{1.0, 3.0} {
		t.Fatalf("expected exactly one OnMediaChanged(1, 3), got %v", mediaCalls)
	}

	// Unchanged viewport: zero additional callbacks.
	vp.change("(min-width: 768px)")
	if len(mediaCalls) != 1 {
		t.Errorf("unchanged viewport fired OnMediaChanged %d extra times", len(mediaCalls)-1)
	}
}

func TestResponsive_MarkupOverridesDefault(t *testing.T) {
	slides := Must("slides-visible", Options{
		Kind:       Number,
		Responsive: true,
		Default:    "(min-width: 768px) 3, 1",
	})

	vp := newFakeViewport("(min-width: 768px)")
	el := newFakeElement(map[string]string{"slides-visible": "(min-width: 768px) 5, 2"})
	b := bindSet(t, el, vp, slides)

	if got := b.Current("slides-visible"); got != 5.0 {
		t.Errorf("resolved = %v, want 5 from markup list", got)
	}

	el.SetAttribute("slides-visible", "(min-width: 768px) 4, 2")
	if got := b.Current("slides-visible"); got != 4.0 {
		t.Errorf("resolved = %v, want 4 after markup change", got)
	}
}

func TestResponsive_MalformedMarkupDegradesToFallback(t *testing.T) {
	handler := &silentHandler{}
	prev := errors.SetHandler(handler)
	defer errors.SetHandler(prev)

	slides := Must("slides-visible", Options{
		Kind:       Number,
		Responsive: true,
		Default:    "(min-width: 768px) 3, 1",
	})

	vp := newFakeViewport("(min-width: 768px)")
	el := newFakeElement(map[string]string{"slides-visible": "(min-width: 768px) 7"})
	b := bindSet(t, el, vp, slides)

	// No fallback clause in the markup list: the whole string becomes the
	// unconditional fallback.
	if got := b.Current("slides-visible"); got != "(min-width: 768px) 7" {
		t.Errorf("resolved = %v, want the raw string as fallback", got)
	}

	found := false
	for _, e := range handler.errors {
		if e.Kind == errors.KindBreakpoint {
			found = true
		}
	}
	if !found {
		t.Error("expected a breakpoint report")
	}
}

func TestUnbind_StopsViewportObservation(t *testing.T) {
	fired := 0
	slides := Must("slides-visible", Options{
		Kind:       Number,
		Responsive: true,
		Default:    "(min-width: 768px) 3, 1",
		OnMediaChanged: func(any, any, any) {
			fired++
		},
	})

	vp := newFakeViewport()
	el := newFakeElement(nil)
	b := bindSet(t, el, vp, slides)

	b.Unbind()
	vp.change("(min-width: 768px)")
	if fired != 0 {
		t.Errorf("unbound set must not observe viewport changes, fired %d", fired)
	}
}

func TestCallbacks_ReceiveOwner(t *testing.T) {
	var got any
	delay := Must("delay", Options{
		Kind:    Number,
		Default: 3000,
		OnChanged: func(owner any, old, new any) {
			got = owner
		},
	})

	el := newFakeElement(nil)
	b := NewBindings("the-instance", "x-test", []*Descriptor{delay})
	el.bindings = b
	b.Bind(el, nil)

	el.SetAttribute("delay", "100")
	if got != "the-instance" {
		t.Errorf("OnChanged owner = %v, want the-instance", got)
	}
}

func TestKind_String(t *testing.T) {
	for kind, want := range map[Kind]string{Bool: "bool", Number: "number", String: "string", Custom: "custom"} {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}

func TestMust_PanicsOnDefinitionError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Must to panic on a malformed descriptor")
		}
		if !strings.Contains(fmt.Sprint(r), "Delay") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()
	Must("Delay", Options{Kind: String})
}
