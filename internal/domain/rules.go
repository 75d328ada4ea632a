package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Pricing is the money breakdown of a sale, in céntimos.
type Pricing struct {
	UnitPriceCent int64
	SubtotalCent  int64
	TaxCent       int64
	TotalCent     int64
}

// ComputePricing derives subtotal/IGV/total from the pinned unit price.
// igvBP is the tax rate in basis points (1800 = 18%); the tax is rounded to
// the nearest céntimo.
func ComputePricing(unitPriceCent int64, passengerCount int, igvBP int64) Pricing {
	subtotal := unitPriceCent * int64(passengerCount)
	tax := (subtotal*igvBP + 5000) / 10000

	return Pricing{
		UnitPriceCent: unitPriceCent,
		SubtotalCent:  subtotal,
		TaxCent:       tax,
		TotalCent:     subtotal + tax,
	}
}

// NormalizeDNI strips everything but digits and reports whether the result is
// a plausible national ID (8 to 10 digits).
func NormalizeDNI(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	dni := b.String()
	if len(dni) < 8 || len(dni) > 10 {
		return "", false
	}

	return dni, true
}

// ValidClock reports whether s is a well-formed "HH:MM" 24h time.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// DateOnly truncates t to its calendar day in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// TravelAt combines a travel date and an "HH:MM" departure into the full
// departure instant in loc. The clock must be validated beforehand; a
// malformed clock yields midnight.
func TravelAt(travelDate time.Time, travelTime string, loc *time.Location) time.Time {
	day := DateOnly(travelDate, loc)

	clock, err := time.Parse("15:04", travelTime)
	if err != nil {
		return day
	}

	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// EndOfTravelDay is the boarding-mutation cutoff: records for a trip are
// frozen once its travel day has fully elapsed.
func EndOfTravelDay(travelDate time.Time, loc *time.Location) time.Time {
	return DateOnly(travelDate, loc).AddDate(0, 0, 1)
}

// AppendNoteLine appends line to existing free-text notes without destroying
// what was already there.
func AppendNoteLine(existing, line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return line
	}
	return existing + "\n" + line
}

// CancellationNoteLine is the structured line appended to a sale's notes when
// it is cancelled or refunded.
func CancellationNoteLine(t CancellationType, reason, notes string, at time.Time) string {
	line := fmt.Sprintf("[%s %s] motivo: %s", t, at.Format("2006-01-02 15:04"), reason)
	if strings.TrimSpace(notes) != "" {
		line += " | " + strings.TrimSpace(notes)
	}
	return line
}

// operatingDays is the closed set of weekday names a schedule may use.
var operatingDays = map[string]struct{}{
	"LUNES":     {},
	"MARTES":    {},
	"MIERCOLES": {},
	"JUEVES":    {},
	"VIERNES":   {},
	"SABADO":    {},
	"DOMINGO":   {},
}

// ValidOperatingDay reports whether name is a recognized weekday.
func ValidOperatingDay(name string) bool {
	_, ok := operatingDays[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// ComputeBoardingStats aggregates boarding counters for one occurrence.
// The percentage is rounded to the nearest integer; remaining capacity never
// goes negative.
func ComputeBoardingStats(controls []BoardingControl, capacity int) OccurrenceStats {
	var st OccurrenceStats
	for _, c := range controls {
		st.Total++
		switch c.State {
		case BoardingBoarded:
			st.Boarded++
		case BoardingNotBoarded:
			st.NotBoarded++
		default:
			st.Pending++
		}
	}

	if st.Total > 0 {
		st.BoardedPct = int((float64(st.Boarded)/float64(st.Total))*100 + 0.5)
	}

	st.RemainingCapacity = capacity - st.Boarded
	if st.RemainingCapacity < 0 {
		st.RemainingCapacity = 0
	}

	return st
}
