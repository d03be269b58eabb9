package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/reflow/internal/keys"
)

type reload struct {
	maps []*keys.Keymap
	err  error
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	write("[[keymap]]\nname = \"v1\"\n")

	reloads := make(chan reload, 8)
	w, err := Watch(path, 20*time.Millisecond, func(maps []*keys.Keymap, err error) {
		reloads <- reload{maps, err}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	write("[[keymap]]\nname = \"v2\"\n[[keymap.bindings]]\nkeys = \"C-s\"\ncommand = \"save\"\n")

	select {
	case r := <-reloads:
		if r.err != nil {
			t.Fatalf("reload error: %v", r.err)
		}
		if len(r.maps) != 1 || r.maps[0].Name != "v2" {
			t.Errorf("reload = %+v, want keymap v2", r.maps)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within deadline")
	}
}

func TestWatcherReportsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.toml")
	if err := os.WriteFile(path, []byte("[[keymap]]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reloads := make(chan reload, 8)
	w, err := Watch(path, 20*time.Millisecond, func(maps []*keys.Keymap, err error) {
		reloads <- reload{maps, err}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	bad := "[[keymap]]\nname = \"x\"\n[[keymap.bindings]]\nkeys = \"Z-q\"\ncommand = \"quit\"\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case r := <-reloads:
		if r.err == nil {
			t.Error("reload of a malformed file should surface its error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within deadline")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.toml")
	if err := os.WriteFile(path, []byte("[[keymap]]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reloads := make(chan reload, 8)
	w, err := Watch(path, 10*time.Millisecond, func(maps []*keys.Keymap, err error) {
		reloads <- reload{maps, err}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-reloads:
		t.Error("sibling file changes should not trigger a reload")
	case <-time.After(200 * time.Millisecond):
	}
}
