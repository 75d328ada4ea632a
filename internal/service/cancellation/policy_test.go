package cancellation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

func TestRequestValidateShape(t *testing.T) {
	valid := Request{Type: domain.CancellationVoid, Reason: "cliente no viaja"}
	assert.NoError(t, valid.validateShape())

	t.Run("unknown type", func(t *testing.T) {
		r := valid
		r.Type = "DEVOLUCION"
		assert.ErrorIs(t, r.validateShape(), ErrInvalidType)
	})

	t.Run("reason too short", func(t *testing.T) {
		r := valid
		r.Reason = "no"
		assert.ErrorIs(t, r.validateShape(), ErrInvalidReason)
	})

	t.Run("whitespace-only reason", func(t *testing.T) {
		r := valid
		r.Reason = "   abc" // trims to 3 runes, still fine
		assert.NoError(t, r.validateShape())

		r.Reason = "  a  "
		assert.ErrorIs(t, r.validateShape(), ErrInvalidReason)
	})
}

func TestAuthorize(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)

	sale := &domain.Sale{
		SellerID:   10,
		TravelDate: time.Date(2026, 9, 2, 0, 0, 0, 0, loc),
		TravelTime: "08:00",
	}

	t.Run("admin always allowed", func(t *testing.T) {
		departed := *sale
		departed.TravelDate = time.Date(2026, 8, 1, 0, 0, 0, 0, loc)

		assert.NoError(t, authorize(&departed, Caller{ID: 99, Role: domain.RoleAdmin}, now, loc))
	})

	t.Run("seller may cancel own future sale", func(t *testing.T) {
		assert.NoError(t, authorize(sale, Caller{ID: 10, Role: domain.RoleSeller}, now, loc))
	})

	t.Run("seller may not cancel another seller's sale", func(t *testing.T) {
		err := authorize(sale, Caller{ID: 11, Role: domain.RoleSeller}, now, loc)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("seller blocked after departure", func(t *testing.T) {
		departed := *sale
		departed.TravelDate = time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		departed.TravelTime = "08:00"

		err := authorize(&departed, Caller{ID: 10, Role: domain.RoleSeller}, now, loc)
		assert.ErrorIs(t, err, ErrTripDeparted)
	})

	t.Run("seller blocked at exact departure instant", func(t *testing.T) {
		exact := *sale
		exact.TravelDate = time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		exact.TravelTime = "12:00"

		err := authorize(&exact, Caller{ID: 10, Role: domain.RoleSeller}, now, loc)
		assert.ErrorIs(t, err, ErrTripDeparted)
	})

	t.Run("operator never allowed", func(t *testing.T) {
		err := authorize(sale, Caller{ID: 10, Role: domain.RoleOperator}, now, loc)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestValidateRefund(t *testing.T) {
	sale := &domain.Sale{TotalCent: 11800}

	t.Run("plain void ignores amount", func(t *testing.T) {
		assert.NoError(t, validateRefund(sale, Request{Type: domain.CancellationVoid}))
	})

	t.Run("full refund allowed", func(t *testing.T) {
		r := Request{Type: domain.CancellationRefund, RefundCent: 11800}
		assert.NoError(t, validateRefund(sale, r))
	})

	t.Run("partial refund allowed", func(t *testing.T) {
		r := Request{Type: domain.CancellationRefund, RefundCent: 5000}
		assert.NoError(t, validateRefund(sale, r))
	})

	t.Run("zero refund rejected", func(t *testing.T) {
		r := Request{Type: domain.CancellationRefund}
		assert.ErrorIs(t, validateRefund(sale, r), ErrInvalidRefund)
	})

	t.Run("refund above total rejected", func(t *testing.T) {
		r := Request{Type: domain.CancellationRefund, RefundCent: 11801}
		assert.ErrorIs(t, validateRefund(sale, r), ErrInvalidRefund)
	})
}
