// Package page defines the capability set the board extractor needs
// from a rendered page, independent of any rendering engine.
package page

import (
	"errors"
	"time"
)

// ErrNoMatch is returned when a selector resolves to no element. A miss
// is a defined outcome, never an empty-string success.
var ErrNoMatch = errors.New("no element matches selector")

// Node is a scope for selector lookups: either the whole page or a
// single element within it.
type Node interface {
	// Text returns the trimmed text content of the first element
	// matching selector, or ErrNoMatch.
	Text(selector string) (string, error)
	// All returns every element matching selector, in document order.
	// No match is a valid empty result.
	All(selector string) ([]Node, error)
}

// Page is a rendered document plus the readiness wait the extractor
// uses as its gate.
type Page interface {
	Node
	// WaitFor blocks until an element matching selector is present,
	// bounded by timeout.
	WaitFor(selector string, timeout time.Duration) error
	Close() error
}
