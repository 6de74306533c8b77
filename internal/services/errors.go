package services

import "errors"

// Handlers map these to HTTP statuses; anything else is a store failure.
var (
	ErrInvalidID       = errors.New("invalid id")
	ErrNotFound        = errors.New("record not found")
	ErrNotAcknowledged = errors.New("write not acknowledged by store")
)
