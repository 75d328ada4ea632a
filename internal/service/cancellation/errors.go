package cancellation

import "errors"

var (
	ErrSaleNotFound     = errors.New("sale not found")
	ErrInvalidState     = errors.New("sale is not in a cancellable state")
	ErrAlreadyCancelled = errors.New("sale already has a cancellation")
	ErrForbidden        = errors.New("caller may not cancel this sale")
	ErrTripDeparted     = errors.New("trip already occurred, contact an administrator for refund processing")
	ErrInvalidType      = errors.New("unknown cancellation type")
	ErrInvalidReason    = errors.New("reason must be at least 3 characters")
	ErrInvalidRefund    = errors.New("refund amount must be positive and not exceed the sale total")
)
