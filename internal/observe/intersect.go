package observe

import "github.com/dshills/reflow/internal/dom"

// ObserveIntersection replaces the visibility watcher's observation set
// with the given elements. The watcher shares the observer's pause
// lifecycle: entries arriving while inactive are dropped, and Start
// discards anything queued before activation.
func (o *Observer) ObserveIntersection(elements ...*dom.Node) {
	if o.io == nil {
		o.io = dom.NewIntersectionObserver(o.doc, o.onIntersections)
	} else {
		o.io.Disconnect()
	}
	for _, el := range elements {
		o.io.Observe(el)
	}
}

// onIntersections fires OnIntersect once per batch, on the first entry
// with a non-zero intersection ratio.
func (o *Observer) onIntersections(entries []dom.IntersectionEntry) {
	o.mu.Lock()
	active := o.active
	o.mu.Unlock()
	if !active {
		return
	}
	for _, e := range entries {
		if e.Ratio > 0 {
			if o.cb.OnIntersect != nil {
				o.cb.OnIntersect()
			}
			return
		}
	}
}
