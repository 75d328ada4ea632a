package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

func TestRouteInputValidate(t *testing.T) {
	valid := RouteInput{
		Name:          "Iquitos - Nauta",
		Origin:        "Iquitos",
		Destination:   "Nauta",
		PriceCentimos: 2500,
		Active:        true,
	}
	assert.NoError(t, valid.validate())

	t.Run("missing name", func(t *testing.T) {
		in := valid
		in.Name = "  "
		assert.ErrorIs(t, in.validate(), ErrInvalidRoute)
	})

	t.Run("origin equals destination case-insensitively", func(t *testing.T) {
		in := valid
		in.Destination = "IQUITOS"
		assert.ErrorIs(t, in.validate(), ErrInvalidRoute)
	})

	t.Run("origin equals destination with padding", func(t *testing.T) {
		in := valid
		in.Destination = " iquitos "
		assert.ErrorIs(t, in.validate(), ErrInvalidRoute)
	})

	t.Run("non-positive price", func(t *testing.T) {
		in := valid
		in.PriceCentimos = 0
		assert.ErrorIs(t, in.validate(), ErrInvalidPrice)
	})
}

func TestVesselInputValidate(t *testing.T) {
	valid := VesselInput{
		Name:     "Rio Amazonas I",
		Capacity: 80,
		Type:     "LANCHA",
		State:    domain.VesselActive,
	}
	assert.NoError(t, valid.validate())

	t.Run("empty name", func(t *testing.T) {
		in := valid
		in.Name = ""
		assert.ErrorIs(t, in.validate(), ErrInvalidVessel)
	})

	t.Run("capacity bounds", func(t *testing.T) {
		in := valid

		in.Capacity = 0
		assert.ErrorIs(t, in.validate(), ErrInvalidCapacity)

		in.Capacity = domain.MaxVesselCapacity
		assert.NoError(t, in.validate())

		in.Capacity = domain.MaxVesselCapacity + 1
		assert.ErrorIs(t, in.validate(), ErrInvalidCapacity)
	})

	t.Run("unknown state", func(t *testing.T) {
		in := valid
		in.State = "VARADA"
		assert.ErrorIs(t, in.validate(), ErrInvalidState)
	})

	t.Run("empty state deferred to default", func(t *testing.T) {
		in := valid
		in.State = ""
		assert.NoError(t, in.validate())
	})
}

func TestScheduleInputNormalize(t *testing.T) {
	valid := ScheduleInput{
		VesselID:       1,
		RouteID:        2,
		DepartureTimes: []string{"06:00", "14:30"},
		OperatingDays:  []string{"lunes", "Miercoles", "VIERNES"},
	}

	t.Run("valid schedule uppercases days", func(t *testing.T) {
		out, err := valid.normalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"LUNES", "MIERCOLES", "VIERNES"}, out.OperatingDays)
	})

	t.Run("no departure times", func(t *testing.T) {
		in := valid
		in.DepartureTimes = nil
		_, err := in.normalize()
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("no operating days", func(t *testing.T) {
		in := valid
		in.OperatingDays = nil
		_, err := in.normalize()
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("malformed clock", func(t *testing.T) {
		in := valid
		in.DepartureTimes = []string{"6:00"}
		_, err := in.normalize()
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})

	t.Run("unknown weekday", func(t *testing.T) {
		in := valid
		in.OperatingDays = []string{"FERIADO"}
		_, err := in.normalize()
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})
}
