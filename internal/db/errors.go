package db

import "errors"

// ErrCharacterNotFound is returned when a character id has no row.
var ErrCharacterNotFound = errors.New("character not found")
