package dom

// NodeKind identifies the kind of a tree node.
type NodeKind uint8

const (
	// ElementNode is a named node with ordered children.
	ElementNode NodeKind = iota

	// TextNode is a leaf carrying text content.
	TextNode
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Node is one node of the rendered tree: either an element with ordered
// children or a text leaf. Nodes are created through a Document and belong
// to it for their lifetime.
type Node struct {
	doc      *Document
	kind     NodeKind
	name     string
	text     string
	parent   *Node
	children []*Node
}

// Kind returns whether the node is an element or a text leaf.
func (n *Node) Kind() NodeKind { return n.kind }

// Name returns the element name. Empty for text leaves.
func (n *Node) Name() string { return n.name }

// Text returns the text content of a text leaf. Empty for elements.
func (n *Node) Text() string { return n.text }

// Parent returns the parent element, or nil for a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's live child list. The slice must not be
// mutated, and structural mutations shift its contents in place; callers
// that need a stable snapshot must copy the elements they care about
// before mutating.
func (n *Node) Children() []*Node { return n.children }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// PrevSibling returns the sibling immediately before this node, or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextSibling returns the sibling immediately after this node, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent first. Emits a structural mutation record on n.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore attaches child immediately before ref, or as the last child
// when ref is nil. The child is detached from any previous parent first,
// emitting a removal record there. Emits a structural mutation record on n.
func (n *Node) InsertBefore(child, ref *Node) error {
	if n.kind != ElementNode {
		return ErrNotElement
	}
	if child.doc != n.doc {
		return ErrWrongDocument
	}
	if ref != nil && ref.parent != n {
		return ErrNotChild
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}

	idx := len(n.children)
	if ref != nil {
		idx = n.indexOf(ref)
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n

	var prev, next *Node
	if idx > 0 {
		prev = n.children[idx-1]
	}
	if idx+1 < len(n.children) {
		next = n.children[idx+1]
	}
	n.doc.record(MutationRecord{
		Target:      n,
		Kind:        MutationStructural,
		PrevSibling: prev,
		NextSibling: next,
	})
	return nil
}

// RemoveChild detaches child from n. The record captures the siblings the
// child had before removal. Emits a structural mutation record on n.
func (n *Node) RemoveChild(child *Node) error {
	if n.kind != ElementNode {
		return ErrNotElement
	}
	idx := n.indexOf(child)
	if idx < 0 {
		return ErrNotChild
	}
	prev := child.PrevSibling()
	next := child.NextSibling()
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil

	n.doc.record(MutationRecord{
		Target:      n,
		Kind:        MutationStructural,
		PrevSibling: prev,
		NextSibling: next,
	})
	return nil
}

// SetText replaces the content of a text leaf. On a document configured
// with legacy text events, this fires a per-character text event instead
// of emitting a batched record.
func (n *Node) SetText(text string) error {
	if n.kind != TextNode {
		return ErrNotText
	}
	old := n.text
	if old == text {
		return nil
	}
	n.text = text

	if n.doc.legacyText {
		n.doc.fire(Event{Kind: EventText, Node: n, OldValue: old})
		return nil
	}
	n.doc.record(MutationRecord{
		Target:   n,
		Kind:     MutationText,
		OldValue: old,
	})
	return nil
}
