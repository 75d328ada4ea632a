package sales

import (
	"strings"
	"time"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

// CustomerInput carries the customer fields submitted with a sale. The
// customer is resolved by DNI: created on first sight, reused afterwards.
type CustomerInput struct {
	DNI         string
	Name        string
	Surname     string
	Phone       string
	Email       string
	Nationality string
	Address     string
}

// CreateInput is everything needed to create a sale.
type CreateInput struct {
	Customer       CustomerInput
	RouteID        int64
	VesselID       int64
	TravelDate     time.Time
	TravelTime     string
	BoardingTime   string
	BoardingPortID int64
	PassengerCount int
	PaymentMethod  string
	Notes          string
}

var paymentMethods = map[string]struct{}{
	"EFECTIVO":      {},
	"TARJETA":       {},
	"YAPE":          {},
	"PLIN":          {},
	"TRANSFERENCIA": {},
}

// normalize validates the input and returns it with the DNI reduced to digits
// and the travel date truncated to a calendar day in loc. The date check is
// date-only: a sale for today remains valid all day regardless of departure
// time.
func (in CreateInput) normalize(now time.Time, loc *time.Location) (CreateInput, error) {
	dni, ok := domain.NormalizeDNI(in.Customer.DNI)
	if !ok {
		return in, ErrInvalidDNI
	}
	in.Customer.DNI = dni

	if in.PassengerCount < 1 {
		return in, ErrInvalidPassengers
	}

	if !domain.ValidClock(in.TravelTime) {
		return in, ErrInvalidTravelTime
	}

	if in.BoardingTime != "" && !domain.ValidClock(in.BoardingTime) {
		return in, ErrInvalidTravelTime
	}

	in.TravelDate = domain.DateOnly(in.TravelDate, loc)
	if in.TravelDate.Before(domain.DateOnly(now, loc)) {
		return in, ErrPastTravelDate
	}

	in.PaymentMethod = strings.ToUpper(strings.TrimSpace(in.PaymentMethod))
	if _, ok := paymentMethods[in.PaymentMethod]; !ok {
		return in, ErrInvalidPayment
	}

	return in, nil
}
