package field

import "errors"

// Sentinel errors for the field system.
var (
	ErrNilMetadata       = errors.New("map metadata is nil")
	ErrMapNotFound       = errors.New("map metadata not found")
	ErrFieldDisposed     = errors.New("field is disposed")
	ErrDuplicateObjectID = errors.New("duplicate object id")
	ErrNilSession        = errors.New("session is nil")
	ErrNilCharacter      = errors.New("character is nil")
)
