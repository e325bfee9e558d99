package query

import (
	"testing"

	"github.com/go-facet/facet/pkg/host"
)

// buildTree constructs:
//
//	main#app
//	├── x-carousel#gallery [autoplay]
//	│   ├── x-slide
//	│   └── x-slide [active]
//	└── footer
func buildTree() *host.Node {
	root := host.NewNode("main")
	root.SetAttribute("id", "app")

	carousel := host.NewNode("x-carousel")
	carousel.SetAttribute("id", "gallery")
	carousel.SetAttribute("autoplay", "")
	root.AppendChild(carousel)

	first := host.NewNode("x-slide")
	carousel.AppendChild(first)

	second := host.NewNode("x-slide")
	second.SetAttribute("active", "true")
	carousel.AppendChild(second)

	footer := host.NewNode("footer")
	root.AppendChild(footer)
	return root
}

func TestByID(t *testing.T) {
	root := buildTree()

	if n := ByID(root, "gallery"); n == nil || n.Tag() != "x-carousel" {
		t.Errorf("ByID(gallery) = %v", n)
	}
	if n := ByID(root, "app"); n != root {
		t.Error("ByID must match the root itself")
	}
	if n := ByID(root, "missing"); n != nil {
		t.Errorf("ByID(missing) = %v, want nil", n)
	}
	if n := ByID(root, ""); n != nil {
		t.Error("empty id must not match")
	}
}

func TestByTag(t *testing.T) {
	root := buildTree()

	slides := ByTag(root, "x-slide")
	if len(slides) != 2 {
		t.Fatalf("ByTag(x-slide) returned %d nodes", len(slides))
	}
	if got := ByTag(root, "header"); len(got) != 0 {
		t.Errorf("ByTag(header) = %v", got)
	}
}

func TestByAttribute(t *testing.T) {
	root := buildTree()

	// Presence match.
	if got := ByAttribute(root, "autoplay", ""); len(got) != 1 || got[0].Tag() != "x-carousel" {
		t.Errorf("ByAttribute(autoplay) = %v", got)
	}
	// Exact value match.
	if got := ByAttribute(root, "active", "true"); len(got) != 1 {
		t.Errorf("ByAttribute(active=true) returned %d nodes", len(got))
	}
	if got := ByAttribute(root, "active", "false"); len(got) != 0 {
		t.Error("value mismatch must not match")
	}
}

func TestFind_PreOrder(t *testing.T) {
	root := buildTree()

	first := Find(root, func(n *host.Node) bool {
		return n.Tag() == "x-slide"
	})
	slides := ByTag(root, "x-slide")
	if first != slides[0] {
		t.Error("Find must return the first match in document order")
	}

	if Find(nil, func(*host.Node) bool { return true }) != nil {
		t.Error("nil root must return nil")
	}
	if Find(root, nil) != nil {
		t.Error("nil predicate must return nil")
	}
}

func TestClosest(t *testing.T) {
	root := buildTree()
	slide := ByTag(root, "x-slide")[0]

	if n := ClosestTag(slide, "x-slide"); n != slide {
		t.Error("Closest must consider the starting node itself")
	}
	if n := ClosestTag(slide, "x-carousel"); n == nil || n.ID() != "gallery" {
		t.Errorf("ClosestTag(x-carousel) = %v", n)
	}
	if n := ClosestTag(slide, "main"); n != root {
		t.Error("Closest must reach the root")
	}
	if n := ClosestTag(slide, "footer"); n != nil {
		t.Error("siblings are not ancestors")
	}
}
