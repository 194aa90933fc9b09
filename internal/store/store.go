package store

import "errors"

// ErrNotFound is returned when a natural-key lookup matches no row.
var ErrNotFound = errors.New("not found")
