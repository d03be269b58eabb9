// Package main is an interactive playground for the reflow reconciliation
// engine: keystrokes become platform edits on a live rendered tree, and
// the observer's notifications to the "document model" are shown as they
// happen. Pausing the observer (C-p) demonstrates that programmatic
// periods suppress model writes without losing pre-pause mutations.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/reflow/internal/config"
	"github.com/dshills/reflow/internal/keys"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		keymapPath  string
		legacy      bool
		showVersion bool
	)
	flag.StringVar(&keymapPath, "keymap", "", "Path to a TOML keymap file merged over the defaults")
	flag.BoolVar(&legacy, "legacy", false, "Emulate a platform without batched text mutations")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("reflow %s (%s)\n", version, commit)
		return 0
	}

	maps := []*keys.Keymap{defaultKeymap()}
	if keymapPath != "" {
		user, err := config.Load(keymapPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		maps = append(maps, user...)
	}
	disp, err := keys.NewDispatcher(maps...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer scr.Fini()

	p := newPlayground(scr, disp, legacy)
	defer p.close()
	p.loop()
	return 0
}

// defaultKeymap is the playground's built-in command set. Unbound
// printable keys insert text into the focused paragraph.
func defaultKeymap() *keys.Keymap {
	return keys.NewKeymap("default").
		Add("C-q", "quit").
		Add("esc", "quit").
		Add("C-p", "toggle-pause").
		Add("C-t", "transform").
		Add("C-v", "scroll-into-view").
		Add("C-x C-s", "save").
		Add("g g", "select-first").
		Add("enter", "new-paragraph").
		Add("backspace", "delete-rune").
		Add("C-d", "delete-paragraph").
		Add("up", "focus-prev").
		Add("down", "focus-next")
}

// toKeyEvent converts a tcell key event to chord form. Control letters
// arrive from the terminal as dedicated key codes; named keys are mapped
// before the control range so enter/tab/esc keep their names.
func toKeyEvent(ev *tcell.EventKey) (keys.Event, bool) {
	var mods keys.Mod
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= keys.ModAlt
	}

	var name string
	switch ev.Key() {
	case tcell.KeyEnter:
		name = "enter"
	case tcell.KeyTab:
		name = "tab"
	case tcell.KeyEsc:
		name = "esc"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "backspace"
	case tcell.KeyDelete:
		name = "delete"
	case tcell.KeyUp:
		name = "up"
	case tcell.KeyDown:
		name = "down"
	case tcell.KeyLeft:
		name = "left"
	case tcell.KeyRight:
		name = "right"
	case tcell.KeyHome:
		name = "home"
	case tcell.KeyEnd:
		name = "end"
	case tcell.KeyPgUp:
		name = "pageup"
	case tcell.KeyPgDn:
		name = "pagedown"
	}
	if name != "" {
		return keys.Event{Key: name, Mods: mods}, true
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return keys.Event{
			Key:  string(rune('a' + k - tcell.KeyCtrlA)),
			Mods: mods | keys.ModCtrl,
		}, true
	}
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mods |= keys.ModCtrl
		}
		return keys.Event{Key: string(ev.Rune()), Mods: mods}, true
	}
	return keys.Event{}, false
}
