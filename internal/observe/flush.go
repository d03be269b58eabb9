package observe

import (
	"time"

	"github.com/dshills/reflow/internal/dom"
)

// Flush drains every pending mutation (queued deliveries, the legacy
// character queue, and records still batched on the platform), resolves
// them to one merged range, and notifies the model when the observer is
// active. Reports whether a document notification was delivered.
func (o *Observer) Flush() bool {
	return o.flush(false, false)
}

// flush is the pipeline. force delivers the notification even while
// inactive (the stop drain). fromSelection suppresses the no-range
// selection re-check, because the selection handler that called us will
// notify itself.
func (o *Observer) flush(force, fromSelection bool) bool {
	o.mu.Lock()
	if o.flushing || o.destroyed {
		o.mu.Unlock()
		return false
	}
	o.flushing = true
	if o.charTimer != nil {
		o.charTimer.Stop()
		o.charTimer = nil
	}
	recs := o.queue
	o.queue = nil
	recs = append(recs, o.charQueue...)
	o.charQueue = nil
	deliver := o.active || force
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.flushing = false
		o.mu.Unlock()
	}()

	recs = append(recs, o.mo.TakeRecords()...)
	if len(recs) == 0 {
		return false
	}

	ranges := make([]Range, 0, len(recs))
	sawDirty := false
	for _, rec := range recs {
		r, resolved := o.read(rec)
		if !resolved {
			continue
		}
		sawDirty = true
		ranges = append(ranges, r)
	}
	merged := Merge(ranges)

	applied := false
	if !merged.Empty() && deliver && o.cb.OnDOMChange != nil {
		o.cb.OnDOMChange(merged.From, merged.To)
		applied = true
	}

	// Dirty marks must not linger with no corrective pass: when the
	// notification was suppressed, resync the view directly.
	if sawDirty && !applied && o.view.Dirty() {
		o.view.Sync()
	}

	// Records that resolved to nothing may still explain a selection
	// move; re-check it.
	if merged.Empty() && !fromSelection {
		o.notifySelection()
	}
	return applied
}

// onMutations receives a platform delivery: queue, then flush, unless a
// flush is already on the stack.
func (o *Observer) onMutations(recs []dom.MutationRecord) {
	o.mu.Lock()
	o.queue = append(o.queue, recs...)
	busy := o.flushing
	o.mu.Unlock()
	if !busy {
		o.flush(false, false)
	}
}

// onTextEvent synthesizes a text mutation record from a legacy
// per-character event and queues it behind the debounce timer. The timer
// slot is single: scheduling while one is pending is a no-op, so a burst
// of character events coalesces into one flush.
func (o *Observer) onTextEvent(ev dom.Event) {
	rec := dom.MutationRecord{
		Target:   ev.Node,
		Kind:     dom.MutationText,
		OldValue: ev.OldValue,
	}
	o.mu.Lock()
	o.charQueue = append(o.charQueue, rec)
	if o.charTimer == nil {
		o.charTimer = time.AfterFunc(o.charDelay, o.charTimerFired)
	}
	o.mu.Unlock()
}

func (o *Observer) charTimerFired() {
	o.mu.Lock()
	o.charTimer = nil
	o.mu.Unlock()
	o.flush(false, false)
}
