package dom

import "errors"

var (
	// ErrNotElement is returned when a child operation targets a text leaf.
	ErrNotElement = errors.New("dom: node is not an element")

	// ErrNotText is returned when SetText targets an element.
	ErrNotText = errors.New("dom: node is not a text leaf")

	// ErrNotChild is returned when the reference node is not a child of
	// the target element.
	ErrNotChild = errors.New("dom: node is not a child of this element")

	// ErrWrongDocument is returned when an operation mixes nodes from
	// different documents.
	ErrWrongDocument = errors.New("dom: node belongs to a different document")
)
