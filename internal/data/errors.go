package data

import "errors"

// ErrEmptyEntry is returned when a data file lists a null entry.
var ErrEmptyEntry = errors.New("empty entry")
