package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/reflow/internal/keys"
)

// File is the decoded shape of a keymap configuration file.
type File struct {
	Keymaps []KeymapSection `toml:"keymap"`
}

// KeymapSection is one [[keymap]] table.
type KeymapSection struct {
	Name     string           `toml:"name"`
	Scope    string           `toml:"scope"`
	Bindings []BindingSection `toml:"bindings"`
}

// BindingSection is one [[keymap.bindings]] table.
type BindingSection struct {
	Keys     string `toml:"keys"`
	Command  string `toml:"command"`
	Priority int    `toml:"priority"`
}

// Load reads and validates the keymap file at path. A missing file is not
// an error; it yields no keymaps.
func Load(path string) ([]*keys.Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading keymap file %s: %w", path, err)
	}
	maps, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("keymap file %s: %w", path, err)
	}
	return maps, nil
}

// LoadReader reads and validates keymap configuration from r.
func LoadReader(r io.Reader) ([]*keys.Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]*keys.Keymap, error) {
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	maps := make([]*keys.Keymap, 0, len(file.Keymaps))
	for i, section := range file.Keymaps {
		km := &keys.Keymap{
			Name:  section.Name,
			Scope: section.Scope,
		}
		if km.Name == "" {
			km.Name = fmt.Sprintf("keymap %d", i+1)
		}
		for _, b := range section.Bindings {
			km.AddBinding(keys.Binding{
				Keys:     b.Keys,
				Command:  b.Command,
				Priority: b.Priority,
			})
		}
		if err := km.Validate(); err != nil {
			return nil, err
		}
		maps = append(maps, km)
	}
	return maps, nil
}
