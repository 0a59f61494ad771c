package repositories

import "errors"

// ErrNotFound is returned when a row does not exist or is owned by a
// different user. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("record not found")
