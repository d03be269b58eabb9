package dom

import "sync"

// IntersectionEntry reports how much of a target is within the viewport.
type IntersectionEntry struct {
	Target *Node
	Ratio  float64
}

// IntersectionCallback receives a batch of intersection entries.
type IntersectionCallback func(entries []IntersectionEntry)

// IntersectionObserver watches a set of nodes for viewport intersection.
// Entries are produced by the host driving DeliverIntersections on the
// document, standing in for real scroll and layout signals.
type IntersectionObserver struct {
	mu      sync.Mutex
	doc     *Document
	fn      IntersectionCallback
	targets map[*Node]struct{}
	pending []IntersectionEntry
}

// NewIntersectionObserver creates an observer delivering entries to fn.
func NewIntersectionObserver(doc *Document, fn IntersectionCallback) *IntersectionObserver {
	o := &IntersectionObserver{
		doc:     doc,
		fn:      fn,
		targets: make(map[*Node]struct{}),
	}
	doc.intObservers = append(doc.intObservers, o)
	return o
}

// Observe adds target to the observation set.
func (o *IntersectionObserver) Observe(target *Node) {
	o.mu.Lock()
	o.targets[target] = struct{}{}
	o.mu.Unlock()
}

// Disconnect empties the observation set and discards queued entries.
// The observer stays registered and may be reused via Observe.
func (o *IntersectionObserver) Disconnect() {
	o.mu.Lock()
	o.targets = make(map[*Node]struct{})
	o.pending = nil
	o.mu.Unlock()
}

// TakeRecords returns queued entries not yet delivered through the
// callback and clears the queue.
func (o *IntersectionObserver) TakeRecords() []IntersectionEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	pending := o.pending
	o.pending = nil
	return pending
}

// deliver passes the entries matching this observer's targets to the
// callback, or queues them when no callback is set.
func (o *IntersectionObserver) deliver(entries []IntersectionEntry) {
	o.mu.Lock()
	var batch []IntersectionEntry
	for _, e := range entries {
		if _, ok := o.targets[e.Target]; ok {
			batch = append(batch, e)
		}
	}
	fn := o.fn
	if fn == nil {
		o.pending = append(o.pending, batch...)
	}
	o.mu.Unlock()

	if len(batch) > 0 && fn != nil {
		fn(batch)
	}
}

// DeliverIntersections routes entries to every registered intersection
// observer, simulating a viewport pass.
func (d *Document) DeliverIntersections(entries ...IntersectionEntry) {
	for _, o := range d.intObservers {
		o.deliver(entries)
	}
}
