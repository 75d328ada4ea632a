package cancellation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

// Caller identifies the authenticated user attempting the cancellation.
type Caller struct {
	ID   int64
	Role domain.Role
}

// Request is the cancellation payload after boundary parsing.
type Request struct {
	Type       domain.CancellationType
	Reason     string
	Notes      string
	RefundCent int64
}

// validateShape rejects malformed requests before any state is read.
func (r Request) validateShape() error {
	if !r.Type.Valid() {
		return ErrInvalidType
	}

	if utf8.RuneCountInString(strings.TrimSpace(r.Reason)) < 3 {
		return ErrInvalidReason
	}

	return nil
}

// authorize applies the role and time-window rules:
//   - an ADMINISTRADOR may cancel any sale at any time;
//   - a VENDEDOR may cancel only sales they created, and only while the
//     trip's full departure timestamp is still in the future.
func authorize(sale *domain.Sale, caller Caller, now time.Time, loc *time.Location) error {
	switch caller.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleSeller:
		if sale.SellerID != caller.ID {
			return ErrForbidden
		}
		if !domain.TravelAt(sale.TravelDate, sale.TravelTime, loc).After(now) {
			return ErrTripDeparted
		}
		return nil
	default:
		return ErrForbidden
	}
}

// validateRefund enforces the REEMBOLSO amount rules against the sale total.
func validateRefund(sale *domain.Sale, r Request) error {
	if r.Type != domain.CancellationRefund {
		return nil
	}

	if r.RefundCent <= 0 || r.RefundCent > sale.TotalCent {
		return ErrInvalidRefund
	}

	return nil
}
