package observe

import (
	"sync"
	"testing"

	"github.com/dshills/reflow/internal/dom"
	"github.com/dshills/reflow/internal/view"
)

// rangeCall is one OnDOMChange invocation.
type rangeCall struct {
	from, to int
}

// recorder captures the observer's callbacks. The debounce timer delivers
// on its own goroutine, so the counters are mutex-guarded and read through
// accessors.
type recorder struct {
	mu         sync.Mutex
	domChanges []rangeCall
	selChanges int
	intersects int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnDOMChange: func(from, to int) {
			r.mu.Lock()
			r.domChanges = append(r.domChanges, rangeCall{from, to})
			r.mu.Unlock()
		},
		OnSelectionChange: func() {
			r.mu.Lock()
			r.selChanges++
			r.mu.Unlock()
		},
		OnIntersect: func() {
			r.mu.Lock()
			r.intersects++
			r.mu.Unlock()
		},
	}
}

func (r *recorder) domCalls() []rangeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rangeCall(nil), r.domChanges...)
}

func (r *recorder) selCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selChanges
}

func (r *recorder) intersectCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.intersects
}

// fixture is a document with three tracked paragraphs spanning [0,5),
// [5,9), [9,14), an observer over them, and a recorder.
type fixture struct {
	doc  *dom.Document
	root *dom.Node
	view *view.View
	obs  *Observer
	rec  *recorder
}

func newFixture(t *testing.T, opts Options, legacy bool) *fixture {
	t.Helper()
	doc := dom.NewDocument(dom.Options{LegacyTextEvents: legacy})
	root := doc.NewElement("doc")
	for _, text := range []string{"alpha", "beta", "gamma"} {
		para := doc.NewElement("para")
		if err := para.AppendChild(doc.NewText(text)); err != nil {
			t.Fatalf("AppendChild: %v", err)
		}
		if err := root.AppendChild(para); err != nil {
			t.Fatalf("AppendChild: %v", err)
		}
	}
	v := view.New(root, view.Options{})
	rec := &recorder{}
	f := &fixture{
		doc:  doc,
		root: root,
		view: v,
		rec:  rec,
		obs:  New(doc, root, v, rec.callbacks(), opts),
	}
	t.Cleanup(f.obs.Destroy)
	return f
}

func (f *fixture) para(i int) *dom.Node { return f.root.Children()[i] }

func (f *fixture) text(i int) *dom.Node { return f.para(i).FirstChild() }
