package corpus

import (
	"errors"
	"fmt"
)

// ErrUnknownItem is returned when an operation names an item the store
// does not hold.
var ErrUnknownItem = errors.New("unknown item")

// ErrImmutableField is returned when an update tries to change an item's
// identity or category.
var ErrImmutableField = errors.New("item identity and category are immutable")

// PersistenceError wraps a storage backend failure. It is recoverable:
// the in-memory store stays authoritative and a later flush may succeed.
type PersistenceError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
