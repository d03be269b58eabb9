package keys

import (
	"strings"
	"testing"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		input string
		want  Event
	}{
		{"a", Event{Key: "a"}},
		{"-", Event{Key: "-"}},
		{"C-s", Event{Key: "s", Mods: ModCtrl}},
		{"M-x", Event{Key: "x", Mods: ModAlt}},
		{"C-M-q", Event{Key: "q", Mods: ModCtrl | ModAlt}},
		{"S-tab", Event{Key: "tab", Mods: ModShift}},
		{"C--", Event{Key: "-", Mods: ModCtrl}},
		{"enter", Event{Key: "enter"}},
		{"Enter", Event{Key: "enter"}},
		{"pageup", Event{Key: "pageup"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChord(tt.input)
			if err != nil {
				t.Fatalf("ParseChord(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseChordErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantSub string
	}{
		{"", "empty chord"},
		{"X-s", "unknown modifier"},
		{"C-C-s", "duplicate modifier"},
		{"whatkey", "unknown key name"},
		{"C-whatkey", "unknown key name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseChord(tt.input)
			if err == nil {
				t.Fatalf("ParseChord(%q) should fail", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Event{Key: "a"}, "a"},
		{Event{Key: "s", Mods: ModCtrl}, "C-s"},
		{Event{Key: "enter", Mods: ModCtrl | ModAlt | ModShift}, "C-M-S-enter"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("C-x  C-s")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if len(seq) != 2 {
		t.Fatalf("len = %d, want 2", len(seq))
	}
	if seq[0].String() != "C-x" || seq[1].String() != "C-s" {
		t.Errorf("sequence = %v %v, want C-x C-s", seq[0], seq[1])
	}

	if _, err := ParseSequence("   "); err == nil {
		t.Error("blank sequence should fail")
	}
	_, err = ParseSequence("g bogus-name")
	if err == nil {
		t.Fatal("sequence with a bad chord should fail")
	}
	if !strings.Contains(err.Error(), "chord 2") {
		t.Errorf("error %q should locate the bad chord", err)
	}
}
