package observe

import (
	"github.com/dshills/reflow/internal/dom"
	"github.com/dshills/reflow/internal/view"
)

// read maps one mutation record to a document-coordinate range. The
// second return reports whether a descriptor was resolved (and marked
// dirty); a mutation outside the tracked subtree yields (None, false)
// and is ignored.
func (o *Observer) read(rec dom.MutationRecord) (Range, bool) {
	desc := o.view.Nearest(rec.Target)
	if desc == nil {
		return None, false
	}
	desc.MarkDirty()

	if rec.Kind == dom.MutationText {
		// Whole-span on purpose: this layer does not locate the edit
		// inside the text; the model recovers it by diffing the span.
		return Range{From: desc.PosAtStart(), To: desc.PosAtEnd()}, true
	}

	before := o.ownedSibling(desc, siblingCandidate(rec.PrevSibling, rec.Target, -1), -1)
	after := o.ownedSibling(desc, siblingCandidate(rec.NextSibling, rec.Target, +1), +1)

	from := desc.PosAtStart()
	if before != nil {
		from = before.PosAfter()
	}
	to := desc.PosAtEnd()
	if after != nil {
		to = after.PosBefore()
	}
	if to < from {
		to = from
	}
	return Range{From: from, To: to}, true
}

// siblingCandidate picks the starting node for the owned-sibling walk:
// the record's own sibling when present, else the target's sibling in
// the search direction.
func siblingCandidate(recorded, target *dom.Node, dir int) *dom.Node {
	if recorded != nil {
		return recorded
	}
	if target == nil {
		return nil
	}
	if dir < 0 {
		return target.PrevSibling()
	}
	return target.NextSibling()
}

// ownedSibling walks from node looking for the nearest node directly
// owned by a child descriptor of desc. The walk ascends toward desc; once
// a node's parent is desc's own node it moves laterally instead, in the
// search direction. Nil when the walk exhausts without finding one.
func (o *Observer) ownedSibling(desc *view.Desc, node *dom.Node, dir int) *view.Desc {
	for node != nil && node != desc.DOM() {
		if d := o.view.Lookup(node); d != nil && d.Parent() == desc {
			return d
		}
		parent := node.Parent()
		switch {
		case parent == nil:
			return nil
		case parent == desc.DOM():
			if dir < 0 {
				node = node.PrevSibling()
			} else {
				node = node.NextSibling()
			}
		default:
			node = parent
		}
	}
	return nil
}
