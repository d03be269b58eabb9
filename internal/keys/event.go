package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mod is a bitmask of modifier keys.
type Mod uint8

const (
	// ModCtrl is the control modifier ("C-").
	ModCtrl Mod = 1 << iota

	// ModAlt is the alt/meta modifier ("M-").
	ModAlt

	// ModShift is the shift modifier ("S-").
	ModShift
)

// Event is one keystroke: a key name plus modifiers. Key is either a
// single rune ("a", "/", "-") or a named key ("enter", "esc").
type Event struct {
	Key  string
	Mods Mod
}

// String returns the chord notation for the event, e.g. "C-x" or "M-enter".
func (e Event) String() string {
	var sb strings.Builder
	if e.Mods&ModCtrl != 0 {
		sb.WriteString("C-")
	}
	if e.Mods&ModAlt != 0 {
		sb.WriteString("M-")
	}
	if e.Mods&ModShift != 0 {
		sb.WriteString("S-")
	}
	sb.WriteString(e.Key)
	return sb.String()
}

// namedKeys are the recognized non-rune key names.
var namedKeys = map[string]bool{
	"enter":     true,
	"tab":       true,
	"space":     true,
	"esc":       true,
	"backspace": true,
	"delete":    true,
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
	"home":      true,
	"end":       true,
	"pageup":    true,
	"pagedown":  true,
}

// ParseChord parses a single chord like "C-s", "M-S-x", or "enter".
// Modifier prefixes are C-, M-, and S-; the remainder is a single rune or
// a named key.
func ParseChord(s string) (Event, error) {
	if s == "" {
		return Event{}, fmt.Errorf("keys: empty chord")
	}

	var mods Mod
	rest := s
	for len(rest) > 2 && rest[1] == '-' {
		var m Mod
		switch rest[0] {
		case 'C':
			m = ModCtrl
		case 'M':
			m = ModAlt
		case 'S':
			m = ModShift
		default:
			return Event{}, fmt.Errorf("keys: chord %q: unknown modifier %q", s, string(rest[0]))
		}
		if mods&m != 0 {
			return Event{}, fmt.Errorf("keys: chord %q: duplicate modifier %q", s, string(rest[0]))
		}
		mods |= m
		rest = rest[2:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		return Event{Key: rest, Mods: mods}, nil
	}
	name := strings.ToLower(rest)
	if !namedKeys[name] {
		return Event{}, fmt.Errorf("keys: chord %q: unknown key name %q", s, rest)
	}
	return Event{Key: name, Mods: mods}, nil
}

// ParseSequence parses a space-separated sequence of chords, e.g.
// "C-x C-s" or "g g".
func ParseSequence(s string) ([]Event, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("keys: empty sequence")
	}
	events := make([]Event, 0, len(fields))
	for i, f := range fields {
		ev, err := ParseChord(f)
		if err != nil {
			return nil, fmt.Errorf("keys: sequence %q, chord %d: %w", s, i+1, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
