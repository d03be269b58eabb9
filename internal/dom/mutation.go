package dom

import "sync"

// MutationKind identifies what a mutation record describes.
type MutationKind uint8

const (
	// MutationStructural records a child inserted into or removed from
	// the target element.
	MutationStructural MutationKind = iota

	// MutationText records a text leaf whose content changed.
	MutationText
)

// String returns the kind name.
func (k MutationKind) String() string {
	switch k {
	case MutationStructural:
		return "structural"
	case MutationText:
		return "text"
	default:
		return "unknown"
	}
}

// MutationRecord describes one mutation of the rendered tree. Records are
// immutable after creation and delivered in FIFO order.
type MutationRecord struct {
	// Target is the element whose child list changed, or the text leaf
	// whose content changed.
	Target *Node

	// Kind distinguishes structural from text mutations.
	Kind MutationKind

	// PrevSibling and NextSibling bracket the point of a structural
	// mutation: the nodes adjacent to the inserted or removed child.
	// Either may be nil at the edges of the child list.
	PrevSibling *Node
	NextSibling *Node

	// OldValue holds the previous text content for text mutations.
	OldValue string
}

// ObserveOptions selects which mutations an observer receives.
type ObserveOptions struct {
	// ChildList includes child insertion and removal on the target.
	ChildList bool

	// CharacterData includes text-content changes.
	CharacterData bool

	// CharacterDataOldValue retains the previous text in the record.
	CharacterDataOldValue bool

	// Subtree extends observation to all descendants of the target.
	Subtree bool
}

// MutationCallback receives a batch of pending records. Invoked once per
// delivery, after the mutation (or enclosing Batch) completes.
type MutationCallback func(records []MutationRecord)

// MutationObserver buffers mutation records for one observation target.
// The buffer has its own lock so TakeRecords may be called from a timer
// goroutine while the tree is mutated on the host loop.
type MutationObserver struct {
	mu      sync.Mutex
	doc     *Document
	fn      MutationCallback
	target  *Node
	opts    ObserveOptions
	records []MutationRecord
	active  bool
}

// NewMutationObserver creates an observer delivering records to fn. The
// observer is inert until Observe is called.
func NewMutationObserver(doc *Document, fn MutationCallback) *MutationObserver {
	return &MutationObserver{doc: doc, fn: fn}
}

// Observe starts buffering mutations of target according to opts,
// replacing any previous observation target.
func (m *MutationObserver) Observe(target *Node, opts ObserveOptions) {
	m.mu.Lock()
	m.target = target
	m.opts = opts
	m.active = true
	m.mu.Unlock()
	m.doc.register(m)
}

// Disconnect stops observation and discards any buffered records.
func (m *MutationObserver) Disconnect() {
	m.mu.Lock()
	m.active = false
	m.records = nil
	m.mu.Unlock()
	m.doc.unregister(m)
}

// TakeRecords returns all buffered records and clears the buffer. Records
// taken here are not delivered through the callback.
func (m *MutationObserver) TakeRecords() []MutationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.records
	m.records = nil
	return recs
}

// matches reports whether the observer wants rec, per its options and
// observation target.
func (m *MutationObserver) matches(rec MutationRecord) bool {
	if !m.active || m.target == nil {
		return false
	}
	switch rec.Kind {
	case MutationStructural:
		if !m.opts.ChildList {
			return false
		}
	case MutationText:
		if !m.opts.CharacterData {
			return false
		}
	}
	if rec.Target == m.target {
		return true
	}
	return m.opts.Subtree && m.target.Contains(rec.Target)
}

// buffer appends rec, stripping OldValue when not requested. Reports
// whether the record was accepted.
func (m *MutationObserver) buffer(rec MutationRecord) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.matches(rec) {
		return false
	}
	if rec.Kind == MutationText && !m.opts.CharacterDataOldValue {
		rec.OldValue = ""
	}
	m.records = append(m.records, rec)
	return true
}
