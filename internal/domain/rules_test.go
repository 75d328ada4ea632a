package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePricing(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice int64
		count     int
		igvBP     int64
		want      Pricing
	}{
		{
			name:      "single passenger 18 percent",
			unitPrice: 5000,
			count:     1,
			igvBP:     1800,
			want:      Pricing{UnitPriceCent: 5000, SubtotalCent: 5000, TaxCent: 900, TotalCent: 5900},
		},
		{
			name:      "three passengers",
			unitPrice: 2550,
			count:     3,
			igvBP:     1800,
			want:      Pricing{UnitPriceCent: 2550, SubtotalCent: 7650, TaxCent: 1377, TotalCent: 9027},
		},
		{
			name:      "tax rounds to nearest centimo",
			unitPrice: 3,
			count:     1,
			igvBP:     1800,
			// 3 * 0.18 = 0.54 rounds to 1
			want: Pricing{UnitPriceCent: 3, SubtotalCent: 3, TaxCent: 1, TotalCent: 4},
		},
		{
			name:      "zero rate",
			unitPrice: 1000,
			count:     2,
			igvBP:     0,
			want:      Pricing{UnitPriceCent: 1000, SubtotalCent: 2000, TaxCent: 0, TotalCent: 2000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePricing(tt.unitPrice, tt.count, tt.igvBP))
		})
	}
}

func TestNormalizeDNI(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain 8 digits", "12345678", "12345678", true},
		{"separators stripped", "12.345.678", "12345678", true},
		{"spaces stripped", " 1234 5678 ", "12345678", true},
		{"ten digits", "1234567890", "1234567890", true},
		{"too short", "1234567", "", false},
		{"too long", "12345678901", "", false},
		{"letters only", "abcdefgh", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDNI(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("08:30"))
	assert.True(t, ValidClock("23:59"))

	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("8:30"))
	assert.False(t, ValidClock("08:60"))
	assert.False(t, ValidClock("0830"))
	assert.False(t, ValidClock(""))
}

func TestTravelAt(t *testing.T) {
	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	date := time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)
	at := TravelAt(date, "08:30", loc)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.March, at.Month())
	assert.Equal(t, 15, at.Day())
	assert.Equal(t, 8, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, loc, at.Location())

	// malformed clock falls back to midnight
	assert.Equal(t, DateOnly(date, loc), TravelAt(date, "nope", loc))
}

func TestEndOfTravelDay(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 15, 18, 0, 0, 0, loc)

	cutoff := EndOfTravelDay(date, loc)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, loc), cutoff)
}

func TestAppendNoteLine(t *testing.T) {
	assert.Equal(t, "hola", AppendNoteLine("", "hola"))
	assert.Equal(t, "hola", AppendNoteLine("   ", "hola"))
	assert.Equal(t, "uno\ndos", AppendNoteLine("uno", "dos"))
	assert.Equal(t, "uno", AppendNoteLine("uno", "  "))
}

func TestCancellationNoteLine(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 5, 0, 0, time.UTC)

	line := CancellationNoteLine(CancellationRefund, "viaje suspendido", "", at)
	assert.Equal(t, "[REEMBOLSO 2026-03-15 10:05] motivo: viaje suspendido", line)

	line = CancellationNoteLine(CancellationVoid, "error de registro", "corregido por caja", at)
	assert.Equal(t, "[ANULACION 2026-03-15 10:05] motivo: error de registro | corregido por caja", line)
}

func TestValidOperatingDay(t *testing.T) {
	assert.True(t, ValidOperatingDay("LUNES"))
	assert.True(t, ValidOperatingDay("domingo"))
	assert.True(t, ValidOperatingDay(" Sabado "))

	assert.False(t, ValidOperatingDay("FERIADO"))
	assert.False(t, ValidOperatingDay(""))
}

func TestComputeBoardingStats(t *testing.T) {
	mk := func(states ...BoardingState) []BoardingControl {
		out := make([]BoardingControl, len(states))
		for i, s := range states {
			out[i].State = s
		}
		return out
	}

	t.Run("empty occurrence", func(t *testing.T) {
		st := ComputeBoardingStats(nil, 40)
		assert.Equal(t, OccurrenceStats{RemainingCapacity: 40}, st)
	})

	t.Run("mixed states", func(t *testing.T) {
		st := ComputeBoardingStats(mk(
			BoardingBoarded, BoardingBoarded, BoardingPending, BoardingNotBoarded,
		), 40)

		assert.Equal(t, 4, st.Total)
		assert.Equal(t, 2, st.Boarded)
		assert.Equal(t, 1, st.Pending)
		assert.Equal(t, 1, st.NotBoarded)
		assert.Equal(t, 50, st.BoardedPct)
		assert.Equal(t, 38, st.RemainingCapacity)
	})

	t.Run("percentage rounds", func(t *testing.T) {
		st := ComputeBoardingStats(mk(
			BoardingBoarded, BoardingPending, BoardingPending,
		), 10)

		// 1/3 = 33.33 rounds to 33
		assert.Equal(t, 33, st.BoardedPct)
	})

	t.Run("remaining capacity never negative", func(t *testing.T) {
		st := ComputeBoardingStats(mk(BoardingBoarded, BoardingBoarded, BoardingBoarded), 2)
		assert.Equal(t, 0, st.RemainingCapacity)
	})
}
