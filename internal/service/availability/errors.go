package availability

import "errors"

var (
	ErrVesselNotFound = errors.New("vessel not found")
	ErrRouteNotFound  = errors.New("route not found")
	ErrBadRequest     = errors.New("invalid availability query")
)
