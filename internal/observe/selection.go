package observe

import "github.com/dshills/reflow/internal/dom"

// The selection watcher is a two-state machine per root: not listening
// until the root gains focus, listening until it loses it. While
// listening, every selection-change event flushes pending mutations
// first; a flush that notified the model explains the selection move, so
// no separate selection notification is sent.

func (o *Observer) onFocus(ev dom.Event) {
	if !o.root.Contains(ev.Node) {
		return
	}
	o.connectSelection()
}

func (o *Observer) onBlur(ev dom.Event) {
	if o.doc.FocusWithin(o.root) {
		return
	}
	o.disconnectSelection()
}

func (o *Observer) connectSelection() {
	o.mu.Lock()
	if o.listening || o.destroyed {
		o.mu.Unlock()
		return
	}
	o.listening = true
	o.mu.Unlock()

	id := o.doc.AddListener(dom.EventSelectionChange, o.onSelectionEvent)
	o.mu.Lock()
	o.selID = id
	o.mu.Unlock()

	// A selection that already sits inside the root counts as a change.
	if o.doc.SelectionWithin(o.root) {
		o.selectionChanged()
	}
}

func (o *Observer) disconnectSelection() {
	o.mu.Lock()
	if !o.listening {
		o.mu.Unlock()
		return
	}
	o.listening = false
	id := o.selID
	o.selID = ""
	o.mu.Unlock()
	o.doc.RemoveListener(id)
}

func (o *Observer) onSelectionEvent(dom.Event) {
	o.selectionChanged()
}

func (o *Observer) selectionChanged() {
	if !o.selectionReady() {
		return
	}
	if !o.flush(false, true) {
		if o.cb.OnSelectionChange != nil {
			o.cb.OnSelectionChange()
		}
	}
}

// selectionReady gates selection handling: the observer must be active,
// the root must hold platform focus, and a selection must exist inside
// the root.
func (o *Observer) selectionReady() bool {
	o.mu.Lock()
	active := o.active
	o.mu.Unlock()
	return active && o.doc.FocusWithin(o.root) && o.doc.SelectionWithin(o.root)
}

// notifySelection is the no-range re-check at the end of a flush.
func (o *Observer) notifySelection() {
	if o.selectionReady() && o.cb.OnSelectionChange != nil {
		o.cb.OnSelectionChange()
	}
}
