package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleStateTransitions(t *testing.T) {
	tests := []struct {
		from SaleState
		to   SaleState
		ok   bool
	}{
		{SaleConfirmed, SaleVoided, true},
		{SaleConfirmed, SaleRefunded, true},
		{SaleConfirmed, SaleConfirmed, false},
		{SaleVoided, SaleConfirmed, false},
		{SaleVoided, SaleRefunded, false},
		{SaleRefunded, SaleVoided, false},
		{SaleRefunded, SaleConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCancellationTypeTargetState(t *testing.T) {
	assert.Equal(t, SaleVoided, CancellationVoid.TargetSaleState())
	assert.Equal(t, SaleRefunded, CancellationRefund.TargetSaleState())
}

func TestBoardingStateTransitions(t *testing.T) {
	tests := []struct {
		from BoardingState
		to   BoardingState
		ok   bool
	}{
		{BoardingPending, BoardingBoarded, true},
		{BoardingPending, BoardingNotBoarded, true},
		{BoardingPending, BoardingPending, false},
		{BoardingBoarded, BoardingNotBoarded, false},
		{BoardingBoarded, BoardingPending, false},
		{BoardingNotBoarded, BoardingBoarded, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, SaleConfirmed.Valid())
	assert.False(t, SaleState("PENDIENTE").Valid())

	assert.True(t, CancellationRefund.Valid())
	assert.False(t, CancellationType("DEVOLUCION").Valid())

	assert.True(t, BoardingNotBoarded.Valid())
	assert.False(t, BoardingState("ABORDO").Valid())

	assert.True(t, VesselMaintenance.Valid())
	assert.False(t, VesselState("VARADA").Valid())

	assert.True(t, RoleOperator.Valid())
	assert.False(t, Role("GERENTE").Valid())
}

func TestSaleOccurrence(t *testing.T) {
	s := Sale{VesselID: 7, RouteID: 3, TravelTime: "06:00"}
	occ := s.Occurrence()

	assert.Equal(t, int64(7), occ.VesselID)
	assert.Equal(t, int64(3), occ.RouteID)
	assert.Equal(t, "06:00", occ.TravelTime)
}
