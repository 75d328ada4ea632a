package catalog

import "errors"

var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrRouteConflict    = errors.New("route name or trajectory already exists")
	ErrInvalidRoute     = errors.New("origin and destination must differ")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrVesselNotFound   = errors.New("vessel not found")
	ErrVesselConflict   = errors.New("vessel name already exists")
	ErrInvalidVessel    = errors.New("vessel name is required")
	ErrInvalidCapacity  = errors.New("capacity must be between 1 and 500")
	ErrInvalidState     = errors.New("unknown vessel state")
	ErrScheduleConflict = errors.New("vessel already has an active assignment for this route")
	ErrInvalidSchedule  = errors.New("schedule needs at least one departure time and one operating day")
	ErrInUse            = errors.New("record is referenced by sales or schedules")
	ErrUserNotFound     = errors.New("user not found or not an operator")
	ErrOperatorConflict = errors.New("vessel already has an active operator")
)
