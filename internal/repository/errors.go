package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrNoAvailability = errors.New("insufficient availability")
	ErrStateChanged   = errors.New("state changed concurrently")
	ErrInUse          = errors.New("referenced by other records")
)
