package view

import (
	"github.com/dshills/reflow/internal/dom"
)

// BorderFunc returns the boundary width of an element in document
// positions. A nil BorderFunc gives every element a zero-width boundary.
type BorderFunc func(*dom.Node) int

// Options configures view construction.
type Options struct {
	// Border computes element boundary widths. Nil means zero.
	Border BorderFunc
}

// View is the descriptor tree over a rendered tree, with a side-table
// from node identity to descriptor.
type View struct {
	root   *Desc
	byNode map[*dom.Node]*Desc
	border BorderFunc
	dirty  bool
}

// New builds a view tracking root and all of its descendants.
func New(root *dom.Node, opts Options) *View {
	v := &View{
		byNode: make(map[*dom.Node]*Desc),
		border: opts.Border,
	}
	v.root = v.build(root, nil)
	v.layout(v.root, 0)
	return v
}

// Root returns the root descriptor.
func (v *View) Root() *Desc { return v.root }

// Dirty reports whether any descriptor has been marked dirty since the
// last Sync.
func (v *View) Dirty() bool { return v.dirty }

// Lookup returns the descriptor tracking exactly node, or nil.
func (v *View) Lookup(node *dom.Node) *Desc {
	return v.byNode[node]
}

// Nearest returns the descriptor tracking node or its closest tracked
// ancestor. Nil when the node is outside the tracked subtree entirely.
func (v *View) Nearest(node *dom.Node) *Desc {
	for cur := node; cur != nil; cur = cur.Parent() {
		if d := v.byNode[cur]; d != nil {
			return d
		}
	}
	return nil
}

// Sync reconciles dirty descriptors with the live tree: child descriptor
// lists are rebuilt to match current node children (reusing descriptors
// for surviving nodes), text sizes are re-read, and the whole layout is
// recomputed. Clears all dirty flags.
func (v *View) Sync() {
	if !v.dirty {
		return
	}
	v.sync(v.root)
	v.layout(v.root, 0)
	v.dirty = false
}

func (v *View) build(node *dom.Node, parent *Desc) *Desc {
	d := &Desc{view: v, parent: parent, node: node}
	if node.Kind() == dom.ElementNode && v.border != nil {
		d.border = v.border(node)
	}
	for _, c := range node.Children() {
		d.children = append(d.children, v.build(c, d))
	}
	v.byNode[node] = d
	return d
}

// sync rebuilds the subtree under d where dirty flags require it.
func (v *View) sync(d *Desc) {
	if d.dirty && d.node.Kind() == dom.ElementNode {
		v.rebuildChildren(d)
	}
	for _, c := range d.children {
		v.sync(c)
	}
	d.dirty = false
}

// rebuildChildren makes d's child descriptors mirror d's node children,
// keeping descriptors whose nodes survived and dropping the rest from
// the side-table.
func (v *View) rebuildChildren(d *Desc) {
	fresh := make([]*Desc, 0, len(d.node.Children()))
	for _, c := range d.node.Children() {
		if existing := v.byNode[c]; existing != nil && existing.parent == d {
			fresh = append(fresh, existing)
			continue
		}
		fresh = append(fresh, v.build(c, d))
	}
	for _, old := range d.children {
		if old.node.Parent() != d.node {
			v.drop(old)
		}
	}
	d.children = fresh
}

// drop removes a descriptor subtree from the side-table. A node that was
// reparented already has a fresh descriptor registered; leave it alone.
func (v *View) drop(d *Desc) {
	if v.byNode[d.node] == d {
		delete(v.byNode, d.node)
	}
	for _, c := range d.children {
		v.drop(c)
	}
}

// layout assigns absolute start positions and sizes, returning d's size.
func (v *View) layout(d *Desc, start int) int {
	d.start = start
	pos := start + d.border
	for _, c := range d.children {
		pos += v.layout(c, pos)
	}
	if d.node.Kind() == dom.TextNode {
		d.size = d.contentSize()
	} else {
		d.size = (pos - start) + d.border
	}
	return d.size
}
