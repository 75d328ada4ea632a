package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateInput {
	return CreateInput{
		Customer: CustomerInput{
			DNI:     "12345678",
			Name:    "Rosa",
			Surname: "Quispe",
		},
		RouteID:        1,
		VesselID:       2,
		TravelDate:     time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		TravelTime:     "06:30",
		BoardingTime:   "06:00",
		BoardingPortID: 3,
		PassengerCount: 2,
		PaymentMethod:  "efectivo",
	}
}

func TestCreateInputNormalize(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	loc := time.UTC

	t.Run("valid input passes", func(t *testing.T) {
		in, err := validInput().normalize(now, loc)
		require.NoError(t, err)

		assert.Equal(t, "12345678", in.Customer.DNI)
		assert.Equal(t, "EFECTIVO", in.PaymentMethod)
		assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, loc), in.TravelDate)
	})

	t.Run("dni separators stripped", func(t *testing.T) {
		base := validInput()
		base.Customer.DNI = "12.345.678"

		in, err := base.normalize(now, loc)
		require.NoError(t, err)
		assert.Equal(t, "12345678", in.Customer.DNI)
	})

	t.Run("bad dni", func(t *testing.T) {
		base := validInput()
		base.Customer.DNI = "123"

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrInvalidDNI)
	})

	t.Run("zero passengers", func(t *testing.T) {
		base := validInput()
		base.PassengerCount = 0

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrInvalidPassengers)
	})

	t.Run("malformed travel time", func(t *testing.T) {
		base := validInput()
		base.TravelTime = "6:30"

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrInvalidTravelTime)
	})

	t.Run("malformed boarding time", func(t *testing.T) {
		base := validInput()
		base.BoardingTime = "25:00"

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrInvalidTravelTime)
	})

	t.Run("empty boarding time allowed", func(t *testing.T) {
		base := validInput()
		base.BoardingTime = ""

		_, err := base.normalize(now, loc)
		assert.NoError(t, err)
	})

	t.Run("past travel date", func(t *testing.T) {
		base := validInput()
		base.TravelDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrPastTravelDate)
	})

	t.Run("same-day sale stays valid all day", func(t *testing.T) {
		base := validInput()
		base.TravelDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		base.TravelTime = "06:30" // already departed at 15:00

		_, err := base.normalize(now, loc)
		assert.NoError(t, err)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		base := validInput()
		base.PaymentMethod = "CHEQUE"

		_, err := base.normalize(now, loc)
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("payment method case-insensitive", func(t *testing.T) {
		for _, m := range []string{"yape", "Plin", "TARJETA", " transferencia "} {
			base := validInput()
			base.PaymentMethod = m

			_, err := base.normalize(now, loc)
			assert.NoError(t, err, m)
		}
	})
}
