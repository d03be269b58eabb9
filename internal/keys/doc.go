// Package keys turns key events into editor commands.
//
// Bindings are written as chords ("C-s", "M-x") and space-separated
// sequences ("g g", "C-x C-s"). Binding syntax is validated eagerly when a
// dispatcher is compiled, so a malformed keymap is rejected before the
// editor is usable, never at first keystroke.
//
// Multi-stroke state lives in a caller-owned Session passed to every
// Dispatch call: the pending prefix, its scope, and its expiry. A prefix
// that is not continued within PrefixTimeout lapses. Nothing in the
// package is shared between sessions.
package keys
