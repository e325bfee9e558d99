package host

// Document owns one markup tree, the registry its tags resolve against, and
// the viewport its responsive bindings observe.
type Document struct {
	registry *Registry
	viewport *Viewport
	root     *Node
	mounted  bool
}

// NewDocument creates a document. A nil registry falls back to
// DefaultRegistry; a nil viewport gets default dimensions.
func NewDocument(registry *Registry, viewport *Viewport) *Document {
	if registry == nil {
		registry = DefaultRegistry
	}
	if viewport == nil {
		viewport = NewViewport(DefaultViewportWidth, DefaultViewportHeight)
	}
	return &Document{registry: registry, viewport: viewport}
}

// Registry returns the registry this document resolves tags against.
func (d *Document) Registry() *Registry {
	return d.registry
}

// Viewport returns the document's viewport service.
func (d *Document) Viewport() *Viewport {
	return d.viewport
}

// Root returns the root node, or nil.
func (d *Document) Root() *Node {
	return d.root
}

// SetRoot replaces the root node. A mounted document disconnects the old
// tree and connects the new one.
func (d *Document) SetRoot(root *Node) {
	if d.mounted && d.root != nil {
		d.disconnectTree(d.root)
	}
	if d.root != nil {
		d.root.adopt(nil)
	}
	d.root = root
	if root != nil {
		root.parent = nil
		root.adopt(d)
		if d.mounted {
			d.connectTree(root)
		}
	}
}

// CreateElement creates a detached node owned by this document.
func (d *Document) CreateElement(tag string) *Node {
	n := NewNode(tag)
	n.doc = d
	return n
}

// Mounted reports whether the document tree is live.
func (d *Document) Mounted() bool {
	return d.mounted
}

// Mount makes the tree live: every node whose tag has a registered
// definition is upgraded in document order and receives its creation
// notification. Mounting twice is a no-op.
func (d *Document) Mount() {
	if d.mounted {
		return
	}
	d.mounted = true
	if d.root != nil {
		d.connectTree(d.root)
	}
}

// Unmount tears the tree down: every upgraded component receives its
// teardown notification, children before parents.
func (d *Document) Unmount() {
	if !d.mounted {
		return
	}
	d.mounted = false
	if d.root != nil {
		d.disconnectTree(d.root)
	}
}

// connectTree upgrades and connects a subtree in document order.
func (d *Document) connectTree(n *Node) {
	if n.component == nil {
		if def, ok := d.registry.Lookup(n.tag); ok {
			n.component = def.Upgrade(n)
		}
	}
	if n.component != nil {
		n.component.Connected()
	}
	for _, c := range n.children {
		d.connectTree(c)
	}
}

// disconnectTree tears a subtree down, children first.
func (d *Document) disconnectTree(n *Node) {
	for i := len(n.children) - 1; i >= 0; i-- {
		d.disconnectTree(n.children[i])
	}
	if n.component != nil {
		n.component.Disconnected()
		n.component = nil
	}
}
