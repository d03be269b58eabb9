package observe

import (
	"errors"
	"testing"

	"github.com/dshills/reflow/internal/dom"
	"github.com/dshills/reflow/internal/view"
)

func TestLiveMutationNotifies(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	if err := f.root.RemoveChild(f.para(1)); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}

	if len(f.rec.domCalls()) != 1 {
		t.Fatalf("domChanges = %d, want 1", len(f.rec.domCalls()))
	}
	// Between the end of "alpha" and the start of "gamma".
	if got := f.rec.domCalls()[0]; got != (rangeCall{5, 9}) {
		t.Errorf("range = [%d,%d), want [5,9)", got.from, got.to)
	}
}

func TestStartIdempotent(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()
	f.obs.Start()

	f.text(0).SetText("alpha!")
	if len(f.rec.domCalls()) != 1 {
		t.Errorf("domChanges = %d after double start, want 1", len(f.rec.domCalls()))
	}
}

func TestStopIdempotent(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	f.doc.Batch(func() {
		f.text(0).SetText("alpha!")
		f.obs.Stop()
		f.obs.Stop()
	})

	if len(f.rec.domCalls()) != 1 {
		t.Errorf("domChanges = %d after double stop, want 1", len(f.rec.domCalls()))
	}
}

// Drain-on-stop: queued mutations are delivered exactly once, with the
// union of their ranges, before the observer disconnects.
func TestStopDrainsPending(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	f.doc.Batch(func() {
		f.text(0).SetText("alphax") // [0,5)
		f.text(2).SetText("gammax") // [9,14)
		f.obs.Stop()

		if len(f.rec.domCalls()) != 1 {
			t.Fatalf("domChanges = %d during stop, want 1", len(f.rec.domCalls()))
		}
		if got := f.rec.domCalls()[0]; got != (rangeCall{0, 14}) {
			t.Errorf("drained range = [%d,%d), want [0,14)", got.from, got.to)
		}
	})

	// Nothing left to deliver at batch end.
	if len(f.rec.domCalls()) != 1 {
		t.Errorf("domChanges = %d after batch, want 1", len(f.rec.domCalls()))
	}
}

func TestPauseSuppressesModelWrites(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()
	f.obs.Stop()

	f.text(0).SetText("edited while paused")
	f.root.AppendChild(f.doc.NewElement("para"))
	if len(f.rec.domCalls()) != 0 {
		t.Fatalf("domChanges = %d while paused, want 0", len(f.rec.domCalls()))
	}

	// Reactivate: new mutations notify exactly once per flush again.
	f.obs.Start()
	f.text(1).SetText("beta!")
	if len(f.rec.domCalls()) != 1 {
		t.Errorf("domChanges = %d after restart, want 1", len(f.rec.domCalls()))
	}
}

// While inactive, a flush that resolves mutations must still keep the
// view consistent: dirty marks are resynced directly instead of waiting
// for a model notification that will never come.
func TestInactiveFlushResyncsView(t *testing.T) {
	f := newFixture(t, Options{}, false)

	// Queue records by hand: the observer is inactive and disconnected,
	// but a caller may still flush explicitly.
	f.obs.onMutations([]dom.MutationRecord{{
		Target:   f.text(0),
		Kind:     dom.MutationText,
		OldValue: "alpha",
	}})

	if len(f.rec.domCalls()) != 0 {
		t.Errorf("domChanges = %d, want 0 while inactive", len(f.rec.domCalls()))
	}
	if f.view.Dirty() {
		t.Error("suppressed flush should have resynced the view")
	}
}

// An active observer with no change callback still must not leave dirty
// marks behind: the flush resyncs the view itself.
func TestNilChangeCallbackResyncsView(t *testing.T) {
	doc := dom.NewDocument(dom.Options{})
	root := doc.NewElement("doc")
	para := doc.NewElement("para")
	if err := para.AppendChild(doc.NewText("alpha")); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if err := root.AppendChild(para); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	v := view.New(root, view.Options{})
	obs := New(doc, root, v, Callbacks{}, Options{})
	t.Cleanup(obs.Destroy)
	obs.Start()

	if err := para.FirstChild().SetText("alphax"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if v.Dirty() {
		t.Error("flush without a change callback should resync the view")
	}
	if d := v.Lookup(para.FirstChild()); d == nil || d.PosAtEnd() != 6 {
		t.Error("resync should have re-read the text span")
	}
}

func TestFlushEmptyReturnsFalse(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	if f.obs.Flush() {
		t.Error("flush with nothing pending should report false")
	}
	if len(f.rec.domCalls()) != 0 || f.rec.selCount() != 0 {
		t.Error("empty flush should notify nothing")
	}
}

func TestWithoutListening(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	t.Run("suppresses own edits", func(t *testing.T) {
		err := f.obs.WithoutListening(func() error {
			f.text(0).SetText("programmatic")
			return nil
		})
		if err != nil {
			t.Fatalf("WithoutListening: %v", err)
		}
		if len(f.rec.domCalls()) != 0 {
			t.Errorf("domChanges = %d, want 0 for programmatic edits", len(f.rec.domCalls()))
		}
	})

	t.Run("propagates errors after resuming", func(t *testing.T) {
		wantErr := errors.New("action failed")
		err := f.obs.WithoutListening(func() error { return wantErr })
		if !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want %v", err, wantErr)
		}
		f.text(1).SetText("still observed")
		if len(f.rec.domCalls()) != 1 {
			t.Errorf("domChanges = %d, want 1 after failed action", len(f.rec.domCalls()))
		}
	})

	t.Run("resumes even on panic", func(t *testing.T) {
		before := len(f.rec.domCalls())
		func() {
			defer func() {
				if recover() == nil {
					t.Error("panic should propagate")
				}
			}()
			f.obs.WithoutListening(func() error { panic("action panicked") })
		}()
		f.text(2).SetText("observed again")
		if len(f.rec.domCalls()) != before+1 {
			t.Errorf("domChanges = %d, want %d after panic", len(f.rec.domCalls()), before+1)
		}
	})
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.Start()

	f.obs.Destroy()
	f.obs.Destroy() // safe to repeat

	f.text(0).SetText("after destroy")
	f.obs.Start() // cannot revive
	f.text(1).SetText("still dead")

	if len(f.rec.domCalls()) != 0 {
		t.Errorf("domChanges = %d after destroy, want 0", len(f.rec.domCalls()))
	}
}

func TestIntersectionLifecycle(t *testing.T) {
	f := newFixture(t, Options{}, false)
	f.obs.ObserveIntersection(f.root)
	f.obs.Start()

	t.Run("first qualifying entry fires once per batch", func(t *testing.T) {
		f.doc.DeliverIntersections(
			dom.IntersectionEntry{Target: f.root, Ratio: 0},
			dom.IntersectionEntry{Target: f.root, Ratio: 0.3},
			dom.IntersectionEntry{Target: f.root, Ratio: 1},
		)
		if f.rec.intersectCount() != 1 {
			t.Errorf("intersects = %d, want 1", f.rec.intersectCount())
		}
	})

	t.Run("zero ratios fire nothing", func(t *testing.T) {
		f.doc.DeliverIntersections(dom.IntersectionEntry{Target: f.root, Ratio: 0})
		if f.rec.intersectCount() != 1 {
			t.Errorf("intersects = %d, want still 1", f.rec.intersectCount())
		}
	})

	t.Run("paused observer drops signals", func(t *testing.T) {
		f.obs.Stop()
		f.doc.DeliverIntersections(dom.IntersectionEntry{Target: f.root, Ratio: 1})
		if f.rec.intersectCount() != 1 {
			t.Errorf("intersects = %d while paused, want still 1", f.rec.intersectCount())
		}
	})

	t.Run("replacing the set drops old targets", func(t *testing.T) {
		f.obs.Start()
		f.obs.ObserveIntersection(f.para(0))
		f.doc.DeliverIntersections(dom.IntersectionEntry{Target: f.root, Ratio: 1})
		if f.rec.intersectCount() != 1 {
			t.Errorf("intersects = %d for dropped target, want still 1", f.rec.intersectCount())
		}
		f.doc.DeliverIntersections(dom.IntersectionEntry{Target: f.para(0), Ratio: 1})
		if f.rec.intersectCount() != 2 {
			t.Errorf("intersects = %d for new target, want 2", f.rec.intersectCount())
		}
	})
}
