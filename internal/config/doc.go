// Package config loads keymap configuration from TOML files and watches
// them for live reload.
//
// A keymap file holds one or more [[keymap]] tables:
//
//	[[keymap]]
//	name = "user"
//	scope = "editor"
//
//	[[keymap.bindings]]
//	keys = "C-x C-s"
//	command = "save"
//	priority = 10
//
// Loading validates every binding eagerly; a malformed file is rejected
// with a descriptive error before it can reach a dispatcher.
package config
