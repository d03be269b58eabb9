package keys

import "fmt"

// Binding maps a key sequence to a command name.
type Binding struct {
	// Keys is the sequence in chord notation, e.g. "C-x C-s".
	Keys string

	// Command is the command name dispatched on a match.
	Command string

	// Priority breaks ties between keymaps binding the same sequence.
	// Higher wins; among equals, the later-registered binding wins.
	Priority int
}

// Keymap is a named set of bindings, optionally restricted to a scope.
type Keymap struct {
	// Name identifies the keymap in error messages.
	Name string

	// Scope restricts the keymap to sessions with a matching scope.
	// Empty means global.
	Scope string

	Bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// ForScope sets the keymap's scope.
func (k *Keymap) ForScope(scope string) *Keymap {
	k.Scope = scope
	return k
}

// Add appends a binding.
func (k *Keymap) Add(keySpec, command string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keySpec, Command: command})
	return k
}

// AddBinding appends a fully configured binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate checks every binding eagerly, returning a descriptive error
// for the first malformed one.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("keymap %q: binding %d: empty keys", k.Name, i)
		}
		if b.Command == "" {
			return fmt.Errorf("keymap %q: binding %d (%s): empty command", k.Name, i, b.Keys)
		}
		if _, err := ParseSequence(b.Keys); err != nil {
			return fmt.Errorf("keymap %q: binding %d: %w", k.Name, i, err)
		}
	}
	return nil
}
