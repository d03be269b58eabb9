// Package view maps rendered-tree nodes to document coordinates.
//
// A View holds one descriptor per tracked node in an explicit side-table,
// keyed by node identity; nodes never point back at their descriptors.
// Each descriptor knows its document-coordinate span, derived from text
// lengths and element border widths during layout. Descriptors are marked
// dirty when the reconciliation engine sees their node mutate; Sync
// rebuilds dirty regions of the descriptor tree from the live tree and
// recomputes the layout.
package view
