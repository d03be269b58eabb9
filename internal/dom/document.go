package dom

import "github.com/google/uuid"

// EventKind identifies a document-level event.
type EventKind uint8

const (
	// EventFocus fires when a node gains platform focus.
	EventFocus EventKind = iota

	// EventBlur fires when a node loses platform focus.
	EventBlur

	// EventSelectionChange fires when the document selection moves.
	EventSelectionChange

	// EventText is the legacy per-character text mutation signal, fired
	// only on documents configured with LegacyTextEvents.
	EventText
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventSelectionChange:
		return "selectionchange"
	case EventText:
		return "textchange"
	default:
		return "unknown"
	}
}

// Event is a document-level event delivered to registered listeners.
type Event struct {
	Kind EventKind

	// Node is the focus target for focus/blur, or the mutated text leaf
	// for legacy text events. Nil for selection changes.
	Node *Node

	// OldValue is the previous text content for legacy text events.
	OldValue string
}

// Listener receives document events.
type Listener func(Event)

// Selection is a caret or range between two points in the tree.
type Selection struct {
	Anchor    *Node
	AnchorOff int
	Head      *Node
	HeadOff   int
}

// Options configures a Document.
type Options struct {
	// LegacyTextEvents switches text mutations from batched records to
	// per-character EventText signals, emulating platforms without a
	// reliable batching mechanism.
	LegacyTextEvents bool
}

type listenerEntry struct {
	id string
	fn Listener
}

// Document owns a rendered tree's nodes and coordinates mutation record
// delivery, event listeners, selection, focus, and viewport intersection.
type Document struct {
	legacyText bool

	observers    []*MutationObserver
	intObservers []*IntersectionObserver
	listeners    map[EventKind][]listenerEntry

	selection *Selection
	focused   *Node

	batchDepth int
	pending    []*MutationObserver
}

// NewDocument creates an empty document.
func NewDocument(opts Options) *Document {
	return &Document{
		legacyText: opts.LegacyTextEvents,
		listeners:  make(map[EventKind][]listenerEntry),
	}
}

// LegacyTextEvents reports whether text mutations arrive as per-character
// events instead of batched records.
func (d *Document) LegacyTextEvents() bool { return d.legacyText }

// NewElement creates a detached element node.
func (d *Document) NewElement(name string) *Node {
	return &Node{doc: d, kind: ElementNode, name: name}
}

// NewText creates a detached text leaf.
func (d *Document) NewText(text string) *Node {
	return &Node{doc: d, kind: TextNode, text: text}
}

// AddListener registers fn for events of the given kind and returns an
// opaque handle for RemoveListener.
func (d *Document) AddListener(kind EventKind, fn Listener) string {
	id := uuid.New().String()
	d.listeners[kind] = append(d.listeners[kind], listenerEntry{id: id, fn: fn})
	return id
}

// RemoveListener unregisters the listener with the given handle. Unknown
// handles are ignored.
func (d *Document) RemoveListener(id string) {
	for kind, entries := range d.listeners {
		for i, e := range entries {
			if e.id == id {
				d.listeners[kind] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// fire delivers ev to listeners registered for its kind. Listeners are
// invoked synchronously; registration order is delivery order.
func (d *Document) fire(ev Event) {
	entries := d.listeners[ev.Kind]
	// Copy: a listener may unregister itself during delivery.
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// SetSelection moves the document selection and fires a selection-change
// event.
func (d *Document) SetSelection(sel Selection) {
	d.selection = &sel
	d.fire(Event{Kind: EventSelectionChange})
}

// ClearSelection removes the selection and fires a selection-change event.
func (d *Document) ClearSelection() {
	if d.selection == nil {
		return
	}
	d.selection = nil
	d.fire(Event{Kind: EventSelectionChange})
}

// Selection returns the current selection, or nil when none exists.
func (d *Document) Selection() *Selection {
	return d.selection
}

// SelectionWithin reports whether a selection exists with both endpoints
// inside root.
func (d *Document) SelectionWithin(root *Node) bool {
	sel := d.selection
	return sel != nil && root.Contains(sel.Anchor) && root.Contains(sel.Head)
}

// SetFocus moves platform focus to node (nil to drop focus entirely),
// firing blur on the previous holder and focus on the new one.
func (d *Document) SetFocus(node *Node) {
	if d.focused == node {
		return
	}
	prev := d.focused
	d.focused = node
	if prev != nil {
		d.fire(Event{Kind: EventBlur, Node: prev})
	}
	if node != nil {
		d.fire(Event{Kind: EventFocus, Node: node})
	}
}

// Focused returns the node holding platform focus, or nil.
func (d *Document) Focused() *Node { return d.focused }

// FocusWithin reports whether platform focus is on root or a descendant.
func (d *Document) FocusWithin(root *Node) bool {
	return d.focused != nil && root.Contains(d.focused)
}

// Batch runs fn with mutation record delivery deferred: records buffer on
// their observers as usual, but callbacks run once, after fn returns.
// Batches nest; delivery happens when the outermost batch ends. Event
// listeners (selection, focus, legacy text) still fire synchronously.
func (d *Document) Batch(fn func()) {
	d.batchDepth++
	defer func() {
		d.batchDepth--
		if d.batchDepth == 0 {
			d.deliver()
		}
	}()
	fn()
}

func (d *Document) register(m *MutationObserver) {
	for _, o := range d.observers {
		if o == m {
			return
		}
	}
	d.observers = append(d.observers, m)
}

func (d *Document) unregister(m *MutationObserver) {
	for i, o := range d.observers {
		if o == m {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// record routes rec to every matching observer, then delivers immediately
// unless a batch is open.
func (d *Document) record(rec MutationRecord) {
	for _, m := range d.observers {
		if m.buffer(rec) {
			d.queueDelivery(m)
		}
	}
	if d.batchDepth == 0 {
		d.deliver()
	}
}

func (d *Document) queueDelivery(m *MutationObserver) {
	for _, p := range d.pending {
		if p == m {
			return
		}
	}
	d.pending = append(d.pending, m)
}

// deliver invokes callbacks for observers with buffered records. An
// observer whose records were already drained via TakeRecords is skipped.
func (d *Document) deliver() {
	pending := d.pending
	d.pending = nil
	for _, m := range pending {
		recs := m.TakeRecords()
		if len(recs) > 0 && m.fn != nil {
			m.fn(recs)
		}
	}
}
