package view

import (
	"unicode/utf8"

	"github.com/dshills/reflow/internal/dom"
)

// Desc tracks one rendered node: its place in the descriptor tree, its
// document-coordinate span, and whether it needs resyncing with the tree.
type Desc struct {
	view     *View
	parent   *Desc
	children []*Desc
	node     *dom.Node

	// border is the number of document positions consumed by each side
	// of an element's boundary. Zero for text leaves.
	border int

	// start is the absolute document position of the node's opening
	// boundary, assigned by layout.
	start int

	// size is the total span including both borders.
	size int

	dirty bool
}

// DOM returns the rendered node this descriptor tracks.
func (d *Desc) DOM() *dom.Node { return d.node }

// Parent returns the owning descriptor, or nil for the view root.
func (d *Desc) Parent() *Desc { return d.parent }

// Children returns the child descriptors. The slice must not be mutated.
func (d *Desc) Children() []*Desc { return d.children }

// Dirty reports whether the descriptor has been marked out of sync.
func (d *Desc) Dirty() bool { return d.dirty }

// MarkDirty flags the descriptor (and the view as a whole) as needing a
// resync before its content is trusted again.
func (d *Desc) MarkDirty() {
	d.dirty = true
	d.view.dirty = true
}

// PosBefore returns the document position immediately before the node.
func (d *Desc) PosBefore() int { return d.start }

// PosAfter returns the document position immediately after the node.
func (d *Desc) PosAfter() int { return d.start + d.size }

// PosAtStart returns the first position inside the node's content.
func (d *Desc) PosAtStart() int { return d.start + d.border }

// PosAtEnd returns the position just past the node's content.
func (d *Desc) PosAtEnd() int { return d.start + d.size - d.border }

// contentSize returns the size of a text leaf's content in runes, or the
// sum of child sizes for an element.
func (d *Desc) contentSize() int {
	if d.node.Kind() == dom.TextNode {
		return utf8.RuneCountInString(d.node.Text())
	}
	total := 0
	for _, c := range d.children {
		total += c.size
	}
	return total
}
