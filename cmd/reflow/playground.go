package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/reflow/internal/dom"
	"github.com/dshills/reflow/internal/keys"
	"github.com/dshills/reflow/internal/observe"
	"github.com/dshills/reflow/internal/view"
)

// playground wires a rendered tree, its view, and an observer to a tcell
// screen. The left column is the live tree; the right column is the
// document model's last-reconciled copy, updated only when the observer
// delivers a change notification.
type playground struct {
	scr  tcell.Screen
	doc  *dom.Document
	root *dom.Node
	view *view.View
	obs  *observe.Observer
	disp *keys.Dispatcher
	sess keys.Session

	cur        int // focused paragraph index
	model      []string
	status     string
	pausedFlag bool
	quit       bool
}

func newPlayground(scr tcell.Screen, disp *keys.Dispatcher, legacy bool) *playground {
	doc := dom.NewDocument(dom.Options{LegacyTextEvents: legacy})
	root := doc.NewElement("doc")
	for _, text := range []string{
		"The reconciliation engine keeps a",
		"document model in step with a tree",
		"mutated outside its control.",
	} {
		para := doc.NewElement("para")
		para.AppendChild(doc.NewText(text))
		root.AppendChild(para)
	}

	p := &playground{
		scr:    scr,
		doc:    doc,
		root:   root,
		view:   view.New(root, view.Options{}),
		disp:   disp,
		status: "ready  (C-q quits, C-p pauses)",
	}
	p.sess.Scope = "editor"

	p.obs = observe.New(doc, root, p.view, observe.Callbacks{
		OnDOMChange:       p.onDOMChange,
		OnSelectionChange: func() { p.status = "selection moved" },
		OnIntersect:       func() { p.status = "region scrolled into view" },
	}, observe.Options{})
	p.obs.ObserveIntersection(root)
	p.obs.Start()

	doc.SetFocus(root)
	p.syncModel()
	return p
}

func (p *playground) close() {
	p.obs.Destroy()
}

// onDOMChange is the document model: it records the dirty range, resyncs
// the view, and refreshes its own copy of the text.
func (p *playground) onDOMChange(from, to int) {
	p.status = fmt.Sprintf("document change [%d,%d)", from, to)
	p.view.Sync()
	p.syncModel()
}

func (p *playground) syncModel() {
	p.model = p.model[:0]
	for _, para := range p.root.Children() {
		var sb strings.Builder
		for _, c := range para.Children() {
			sb.WriteString(c.Text())
		}
		p.model = append(p.model, sb.String())
	}
}

func (p *playground) loop() {
	for !p.quit {
		p.draw()
		ev := p.scr.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.scr.Sync()
		case *tcell.EventKey:
			p.handleKey(ev)
		}
	}
}

func (p *playground) handleKey(ev *tcell.EventKey) {
	kev, ok := toKeyEvent(ev)
	if !ok {
		return
	}
	res := p.disp.Dispatch(&p.sess, kev, time.Now())
	switch res.Kind {
	case keys.Matched:
		p.command(res.Command)
	case keys.Pending:
		p.status = "pending: " + chordPrefix(p.sess.Prefix)
	case keys.NoMatch:
		if kev.Mods == 0 && len(kev.Key) > 0 && ev.Key() == tcell.KeyRune {
			p.insertRune(ev.Rune())
		} else {
			p.status = "unbound: " + kev.String()
		}
	}
}

func chordPrefix(prefix []keys.Event) string {
	parts := make([]string, len(prefix))
	for i, ev := range prefix {
		parts[i] = ev.String()
	}
	return strings.Join(parts, " ")
}

func (p *playground) command(name string) {
	switch name {
	case "quit":
		p.quit = true
	case "toggle-pause":
		if p.pausedFlag {
			p.obs.Start()
			p.pausedFlag = false
			p.status = "observation resumed"
		} else {
			p.obs.Stop()
			p.pausedFlag = true
			p.status = "observation paused"
		}
	case "transform":
		// An external "autocorrect" pass: mutates the tree directly.
		if t := p.focusedText(); t != nil {
			t.SetText(strings.ToUpper(t.Text()))
		}
	case "scroll-into-view":
		p.doc.DeliverIntersections(dom.IntersectionEntry{Target: p.root, Ratio: 1})
	case "save":
		p.status = "saved (no-op)"
	case "select-first":
		if first := p.root.FirstChild(); first != nil {
			p.cur = 0
			p.doc.SetSelection(dom.Selection{Anchor: first, Head: first})
		}
	case "new-paragraph":
		para := p.doc.NewElement("para")
		para.AppendChild(p.doc.NewText(""))
		ref := p.focusedPara()
		if ref != nil {
			ref = ref.NextSibling()
		}
		p.root.InsertBefore(para, ref)
		p.cur++
	case "delete-rune":
		if t := p.focusedText(); t != nil && len(t.Text()) > 0 {
			runes := []rune(t.Text())
			t.SetText(string(runes[:len(runes)-1]))
		}
	case "delete-paragraph":
		if para := p.focusedPara(); para != nil && len(p.root.Children()) > 1 {
			p.root.RemoveChild(para)
			if p.cur >= len(p.root.Children()) {
				p.cur = len(p.root.Children()) - 1
			}
		}
	case "focus-prev":
		if p.cur > 0 {
			p.cur--
			p.selectFocused()
		}
	case "focus-next":
		if p.cur+1 < len(p.root.Children()) {
			p.cur++
			p.selectFocused()
		}
	default:
		p.status = "unknown command: " + name
	}
}

func (p *playground) focusedPara() *dom.Node {
	children := p.root.Children()
	if p.cur < 0 || p.cur >= len(children) {
		return nil
	}
	return children[p.cur]
}

func (p *playground) focusedText() *dom.Node {
	if para := p.focusedPara(); para != nil {
		return para.FirstChild()
	}
	return nil
}

func (p *playground) selectFocused() {
	if para := p.focusedPara(); para != nil {
		p.doc.SetSelection(dom.Selection{Anchor: para, Head: para})
	}
}

func (p *playground) insertRune(r rune) {
	if t := p.focusedText(); t != nil {
		t.SetText(t.Text() + string(r))
	}
}

func (p *playground) draw() {
	p.scr.Clear()
	style := tcell.StyleDefault
	focus := style.Bold(true)
	dim := style.Dim(true)

	w, _ := p.scr.Size()
	half := w / 2

	drawText(p.scr, 0, 0, dim, "rendered tree")
	drawText(p.scr, half, 0, dim, "document model")
	for i, para := range p.root.Children() {
		st := style
		if i == p.cur {
			st = focus
		}
		var sb strings.Builder
		for _, c := range para.Children() {
			sb.WriteString(c.Text())
		}
		drawText(p.scr, 0, i+2, st, sb.String())
	}
	for i, line := range p.model {
		drawText(p.scr, half, i+2, style, line)
	}

	bar := p.status
	if p.pausedFlag {
		bar = "[paused] " + bar
	}
	drawText(p.scr, 0, len(p.model)+4, dim, bar)
	p.scr.Show()
}

func drawText(scr tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		scr.SetContent(x+i, y, r, nil, style)
	}
}
