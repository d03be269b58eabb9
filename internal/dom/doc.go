// Package dom provides the live rendered tree that the reconciliation
// engine observes.
//
// The tree is a minimal editable structure: elements with ordered children
// and text leaves. Mutating operations (AppendChild, InsertBefore,
// RemoveChild, SetText) emit mutation records to any registered
// MutationObserver, mirroring how a rendering platform reports edits made
// outside the program's control.
//
// A Document coordinates record delivery, event listeners (focus, blur,
// selection change, legacy per-character text events), selection and focus
// state, and viewport intersection. Batch groups several mutations into a
// single observer delivery, which is the package's notion of a "tick".
//
// The tree and Document are intended to be driven from a single event loop
// and are not safe for concurrent mutation. Observer record buffers are
// independently locked so a debounce timer may drain them from another
// goroutine.
package dom
