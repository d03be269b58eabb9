// Package observe reconciles mutations of a live rendered tree with a
// document model.
//
// An Observer watches a root element through the platform's mutation
// batching (and, on legacy documents, per-character text events), maps
// each mutation record back to a document-coordinate range via the view
// package, merges overlapping ranges into one dirty span, and notifies
// the document model, unless it has been paused. Pausing is how a caller
// keeps the editor's own rendering writes from being reinterpreted as
// external edits.
//
// Selection-change events flush pending mutations first: when the flush
// delivers a document notification, the selection move is treated as a
// consequence of that mutation and no separate selection notification is
// sent, so one logical edit produces exactly one callback. A visibility
// watcher shares the pause lifecycle and reports when an observed element
// scrolls into view.
package observe
