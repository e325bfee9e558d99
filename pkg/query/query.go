// Package query provides tree search over mounted markup nodes.
package query

import (
	"github.com/go-facet/facet/pkg/host"
)

// Predicate reports whether a node matches.
type Predicate func(*host.Node) bool

// Find returns the first node in pre-order, starting at root, for which
// match returns true, or nil when nothing matches.
func Find(root *host.Node, match Predicate) *host.Node {
	if root == nil || match == nil {
		return nil
	}
	var found *host.Node
	root.Walk(func(n *host.Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every matching node under root in pre-order.
func FindAll(root *host.Node, match Predicate) []*host.Node {
	if root == nil || match == nil {
		return nil
	}
	var found []*host.Node
	root.Walk(func(n *host.Node) bool {
		if match(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// ByID returns the node under root with the given id attribute, or nil.
func ByID(root *host.Node, id string) *host.Node {
	if id == "" {
		return nil
	}
	return Find(root, func(n *host.Node) bool {
		return n.ID() == id
	})
}

// ByTag returns every node under root with the given tag.
func ByTag(root *host.Node, tag string) []*host.Node {
	return FindAll(root, func(n *host.Node) bool {
		return n.Tag() == tag
	})
}

// ByAttribute returns every node under root carrying the named attribute.
// An empty value matches any present value; a non-empty value must match
// exactly.
func ByAttribute(root *host.Node, name, value string) []*host.Node {
	return FindAll(root, func(n *host.Node) bool {
		got, ok := n.Attribute(name)
		if !ok {
			return false
		}
		return value == "" || got == value
	})
}

// Closest walks from n up through its ancestors, n included, and returns
// the first node for which match returns true, or nil.
func Closest(n *host.Node, match Predicate) *host.Node {
	if match == nil {
		return nil
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// ClosestTag is Closest matching on the tag name.
func ClosestTag(n *host.Node, tag string) *host.Node {
	return Closest(n, func(c *host.Node) bool {
		return c.Tag() == tag
	})
}
