package boarding

import "errors"

var (
	ErrControlNotFound   = errors.New("boarding record not found")
	ErrVesselNotFound    = errors.New("vessel not found")
	ErrNotActiveOperator = errors.New("caller is not an active vessel operator")
	ErrWrongVessel       = errors.New("boarding record belongs to another vessel")
	ErrTripClosed        = errors.New("trip already elapsed, boarding record is frozen")
	ErrInvalidTransition = errors.New("boarding state transition not allowed")
	ErrInvalidState      = errors.New("unknown boarding state")
	ErrBadRequest        = errors.New("invalid boarding query")
)
