package sales

import "errors"

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrRouteInactive     = errors.New("route is not active")
	ErrVesselNotFound    = errors.New("vessel not found")
	ErrVesselUnavailable = errors.New("vessel is not in service")
	ErrPortNotFound      = errors.New("boarding port not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrNoAvailability    = errors.New("insufficient availability")
	ErrInvalidDNI        = errors.New("invalid customer DNI")
	ErrInvalidPassengers = errors.New("passenger count must be at least 1")
	ErrPastTravelDate    = errors.New("travel date is in the past")
	ErrInvalidTravelTime = errors.New("invalid travel time")
	ErrInvalidPayment    = errors.New("unknown payment method")
)
