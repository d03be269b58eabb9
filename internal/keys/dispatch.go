package keys

import (
	"fmt"
	"strings"
	"time"
)

// PrefixTimeout is how long a partial multi-stroke sequence waits for its
// next keystroke before lapsing.
const PrefixTimeout = 4 * time.Second

// Session holds one editor's multi-stroke dispatch state. It is owned by
// the caller and passed explicitly to every Dispatch call; sessions are
// never shared between editors.
type Session struct {
	// Prefix is the pending partial sequence.
	Prefix []Event

	// Scope selects scoped keymaps in addition to global ones.
	Scope string

	// Expiry is when the pending prefix lapses. Zero when no prefix is
	// pending.
	Expiry time.Time
}

// Reset clears any pending prefix.
func (s *Session) Reset() {
	s.Prefix = s.Prefix[:0]
	s.Expiry = time.Time{}
}

// Expired reports whether a pending prefix has lapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.Expiry.IsZero() && now.After(s.Expiry)
}

// ResultKind classifies a dispatch outcome.
type ResultKind uint8

const (
	// NoMatch means the event completes no binding and starts none.
	NoMatch ResultKind = iota

	// Pending means the event extends a multi-stroke sequence that is
	// not yet complete.
	Pending

	// Matched means a binding completed; Result.Command names it.
	Matched
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case NoMatch:
		return "nomatch"
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Result is the outcome of dispatching one key event.
type Result struct {
	Kind    ResultKind
	Command string
}

type trieNode struct {
	children map[string]*trieNode
	command  string
	priority int
	bound    bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// Dispatcher resolves key events against compiled keymaps. Compilation
// parses and validates every binding up front; a Dispatcher that was
// constructed successfully cannot fail at dispatch time.
type Dispatcher struct {
	scopes map[string]*trieNode
}

// NewDispatcher compiles the given keymaps, failing fast on the first
// malformed or conflicting binding.
func NewDispatcher(maps ...*Keymap) (*Dispatcher, error) {
	d := &Dispatcher{scopes: make(map[string]*trieNode)}
	for _, km := range maps {
		if err := d.add(km); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dispatcher) add(km *Keymap) error {
	if err := km.Validate(); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	root := d.scopes[km.Scope]
	if root == nil {
		root = newTrieNode()
		d.scopes[km.Scope] = root
	}
	for _, b := range km.Bindings {
		seq, err := ParseSequence(b.Keys)
		if err != nil {
			// Validate caught syntax already; kept for safety.
			return fmt.Errorf("keys: keymap %q: %w", km.Name, err)
		}
		node := root
		for i, ev := range seq {
			if node.bound && i > 0 {
				return fmt.Errorf("keys: keymap %q: binding %q extends the complete binding %q",
					km.Name, b.Keys, chordPath(seq[:i]))
			}
			next := node.children[ev.String()]
			if next == nil {
				next = newTrieNode()
				node.children[ev.String()] = next
			}
			node = next
		}
		if len(node.children) > 0 {
			return fmt.Errorf("keys: keymap %q: binding %q is a prefix of a longer binding",
				km.Name, b.Keys)
		}
		if !node.bound || b.Priority >= node.priority {
			node.command = b.Command
			node.priority = b.Priority
			node.bound = true
		}
	}
	return nil
}

func chordPath(seq []Event) string {
	parts := make([]string, len(seq))
	for i, ev := range seq {
		parts[i] = ev.String()
	}
	return strings.Join(parts, " ")
}

// walk follows seq through the trie for scope, returning the reached node
// or nil.
func (d *Dispatcher) walk(scope string, seq []Event) *trieNode {
	node := d.scopes[scope]
	if node == nil {
		return nil
	}
	for _, ev := range seq {
		node = node.children[ev.String()]
		if node == nil {
			return nil
		}
	}
	return node
}

// Dispatch resolves ev against the session's pending prefix. An expired
// prefix is dropped first. A keystroke that breaks a pending sequence is
// re-dispatched as the start of a fresh one.
func (d *Dispatcher) Dispatch(s *Session, ev Event, now time.Time) Result {
	if s.Expired(now) {
		s.Reset()
	}

	seq := make([]Event, 0, len(s.Prefix)+1)
	seq = append(seq, s.Prefix...)
	seq = append(seq, ev)

	node := d.walk(s.Scope, seq)
	if node == nil && s.Scope != "" {
		node = d.walk("", seq)
	}
	if node == nil {
		if len(s.Prefix) > 0 {
			s.Reset()
			return d.Dispatch(s, ev, now)
		}
		s.Reset()
		return Result{Kind: NoMatch}
	}

	if node.bound {
		s.Reset()
		return Result{Kind: Matched, Command: node.command}
	}

	s.Prefix = seq
	s.Expiry = now.Add(PrefixTimeout)
	return Result{Kind: Pending}
}
