package observe

import (
	"sync"
	"time"

	"github.com/dshills/reflow/internal/dom"
	"github.com/dshills/reflow/internal/view"
)

// DefaultCharDataDelay is how long the legacy per-character queue waits
// for further events before forcing a flush.
const DefaultCharDataDelay = 20 * time.Millisecond

// Callbacks are the notifications an Observer delivers to its owner. Any
// of them may be nil. They are invoked synchronously from flush, selection,
// and intersection handling; a callback must not mutate the observed tree
// without pausing the observer first.
type Callbacks struct {
	// OnDOMChange reports the merged dirty range of a flush in document
	// coordinates, half-open.
	OnDOMChange func(from, to int)

	// OnSelectionChange reports a selection move that was not explained
	// by a document mutation.
	OnSelectionChange func()

	// OnIntersect reports that an observed element came into view.
	OnIntersect func()
}

// Options configures an Observer.
type Options struct {
	// CharDataDelay overrides DefaultCharDataDelay for the legacy queue.
	CharDataDelay time.Duration
}

// Observer reconciles mutations of the tree under root with a document
// model, notifying through cb. It owns its platform registrations and
// timers exclusively; the tree, the view, and the callbacks belong to the
// caller.
type Observer struct {
	doc  *dom.Document
	root *dom.Node
	view *view.View
	cb   Callbacks

	charDelay time.Duration

	mo *dom.MutationObserver
	io *dom.IntersectionObserver

	mu        sync.Mutex
	active    bool
	flushing  bool
	listening bool
	destroyed bool
	queue     []dom.MutationRecord
	charQueue []dom.MutationRecord
	charTimer *time.Timer

	focusID string
	blurID  string
	selID   string
	textID  string
}

// New creates an observer for the tree under root, mapped by v. The
// observer is inactive until Start is called; focus and blur are watched
// from construction so the selection listener engages as soon as the
// region gains focus.
func New(doc *dom.Document, root *dom.Node, v *view.View, cb Callbacks, opts Options) *Observer {
	o := &Observer{
		doc:       doc,
		root:      root,
		view:      v,
		cb:        cb,
		charDelay: opts.CharDataDelay,
	}
	if o.charDelay <= 0 {
		o.charDelay = DefaultCharDataDelay
	}
	o.mo = dom.NewMutationObserver(doc, o.onMutations)
	o.focusID = doc.AddListener(dom.EventFocus, o.onFocus)
	o.blurID = doc.AddListener(dom.EventBlur, o.onBlur)
	return o
}

// Start begins observation. Idempotent: a no-op while already active.
// Visibility signals queued before activation are discarded.
func (o *Observer) Start() {
	o.mu.Lock()
	if o.active || o.destroyed {
		o.mu.Unlock()
		return
	}
	o.active = true
	o.mu.Unlock()

	if o.io != nil {
		o.io.TakeRecords()
	}
	o.mo.Observe(o.root, dom.ObserveOptions{
		ChildList:             true,
		CharacterData:         true,
		CharacterDataOldValue: true,
		Subtree:               true,
	})
	if o.doc.LegacyTextEvents() {
		id := o.doc.AddListener(dom.EventText, o.onTextEvent)
		o.mu.Lock()
		o.textID = id
		o.mu.Unlock()
	}
}

// Stop pauses observation. Idempotent: a no-op while already inactive.
// The active flag drops before draining, so records produced by the drain
// itself are not re-entrantly processed. Everything already pending is
// then flushed as if still active, since mutations from before a pause
// must reach the model exactly once, and only then are the platform
// registrations removed. Mutations arriving after the drain and before
// reactivation are the one accepted information loss.
func (o *Observer) Stop() {
	o.mu.Lock()
	if !o.active || o.destroyed {
		o.mu.Unlock()
		return
	}
	o.active = false
	o.mu.Unlock()

	o.flush(true, false)

	o.mo.Disconnect()
	o.mu.Lock()
	textID := o.textID
	o.textID = ""
	o.mu.Unlock()
	if textID != "" {
		o.doc.RemoveListener(textID)
	}
}

// WithoutListening runs fn with observation paused, restarting even when
// fn fails or panics. Callers performing programmatic tree updates use
// this so their own writes are not observed as external edits.
func (o *Observer) WithoutListening(fn func() error) error {
	o.Stop()
	defer o.Start()
	return fn()
}

// Destroy tears down every registration and timer. The observer cannot be
// restarted afterwards. Safe to call more than once.
func (o *Observer) Destroy() {
	o.Stop()
	o.disconnectSelection()

	o.mu.Lock()
	if o.destroyed {
		o.mu.Unlock()
		return
	}
	o.destroyed = true
	if o.charTimer != nil {
		o.charTimer.Stop()
		o.charTimer = nil
	}
	o.charQueue = nil
	o.queue = nil
	focusID, blurID := o.focusID, o.blurID
	o.focusID, o.blurID = "", ""
	o.mu.Unlock()

	o.doc.RemoveListener(focusID)
	o.doc.RemoveListener(blurID)
	if o.io != nil {
		o.io.Disconnect()
	}
}
