package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/uow"
)

// Service is the back-office catalog: routes, vessels, schedule assignments
// and operator bindings. Admin-only at the transport layer.
type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
	now   func() time.Time
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
		now:   time.Now,
	}
}

// RouteInput carries the mutable route fields.
type RouteInput struct {
	Name          string
	Origin        string
	Destination   string
	PriceCentimos int64
	Active        bool
}

func (in RouteInput) validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Origin) == "" ||
		strings.TrimSpace(in.Destination) == "" {
		return ErrInvalidRoute
	}

	if strings.EqualFold(strings.TrimSpace(in.Origin), strings.TrimSpace(in.Destination)) {
		return ErrInvalidRoute
	}

	if in.PriceCentimos <= 0 {
		return ErrInvalidPrice
	}

	return nil
}

// CreateRoute registers a route. The trajectory check and the insert run in
// one transaction so two admins cannot race the same (origin, destination).
//
// Returns:
//   - error: catalog.ErrRouteConflict on a duplicate name or trajectory.
//   - error: catalog.ErrInvalidRoute / ErrInvalidPrice on bad input.
func (s *Service) CreateRoute(ctx context.Context, in RouteInput) (*domain.Route, error) {
	const op = "service.catalog.CreateRoute"

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rt := &domain.Route{
		Name:          strings.TrimSpace(in.Name),
		Origin:        strings.TrimSpace(in.Origin),
		Destination:   strings.TrimSpace(in.Destination),
		PriceCentimos: in.PriceCentimos,
		Active:        in.Active,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Catalog().With(tx)

		taken, err := repo.RouteHasTrajectory(ctx, rt.Origin, rt.Destination, 0)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if taken {
			return fmt.Errorf("%s:%w", op, ErrRouteConflict)
		}

		id, err := repo.CreateRoute(ctx, rt)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrRouteConflict)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		rt.ID = id

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rt, nil
}

// UpdateRoute replaces the mutable fields of a route. Existing sales keep the
// unit price pinned at their creation time.
//
// Returns:
//   - error: catalog.ErrRouteNotFound if the route does not exist.
//   - error: catalog.ErrRouteConflict on a duplicate name or trajectory.
func (s *Service) UpdateRoute(ctx context.Context, id int64, in RouteInput) (*domain.Route, error) {
	const op = "service.catalog.UpdateRoute"

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rt := &domain.Route{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Origin:        strings.TrimSpace(in.Origin),
		Destination:   strings.TrimSpace(in.Destination),
		PriceCentimos: in.PriceCentimos,
		Active:        in.Active,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Catalog().With(tx)

		taken, err := repo.RouteHasTrajectory(ctx, rt.Origin, rt.Destination, id)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if taken {
			return fmt.Errorf("%s:%w", op, ErrRouteConflict)
		}

		if err := repo.UpdateRoute(ctx, rt); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrRouteNotFound)
			case errors.Is(err, repository.ErrConflict):
				return fmt.Errorf("%s:%w", op, ErrRouteConflict)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rt, nil
}

func (s *Service) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	const op = "service.catalog.GetRoute"

	rt, err := s.store.Catalog().GetRoute(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return rt, nil
}

func (s *Service) ListRoutes(ctx context.Context, onlyActive bool) ([]domain.Route, error) {
	const op = "service.catalog.ListRoutes"

	out, err := s.store.Catalog().ListRoutes(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// DeactivateRoute soft-deactivates a route, leaving history intact. New sales
// against it are refused; existing sales and cancellations keep working.
//
// Returns:
//   - error: catalog.ErrRouteNotFound if the route does not exist.
func (s *Service) DeactivateRoute(ctx context.Context, id int64) error {
	const op = "service.catalog.DeactivateRoute"

	if err := s.store.Catalog().DeactivateRoute(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// DeleteRoute physically removes a route that was never referenced by a sale
// or a schedule. Referenced routes must be deactivated instead.
//
// Returns:
//   - error: catalog.ErrInUse if sales or schedules reference the route.
//   - error: catalog.ErrRouteNotFound if the route does not exist.
func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteRoute"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Catalog().With(tx)

		inUse, err := repo.RouteInUse(ctx, id)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if inUse {
			return fmt.Errorf("%s:%w", op, ErrInUse)
		}

		if err := repo.DeleteRoute(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrRouteNotFound)
			case errors.Is(err, repository.ErrInUse):
				return fmt.Errorf("%s:%w", op, ErrInUse)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
}

// VesselInput carries the mutable vessel fields.
type VesselInput struct {
	Name     string
	Capacity int
	Type     string
	State    domain.VesselState
}

func (in VesselInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidVessel
	}

	if in.Capacity < 1 || in.Capacity > domain.MaxVesselCapacity {
		return ErrInvalidCapacity
	}

	if in.State != "" && !in.State.Valid() {
		return ErrInvalidState
	}

	return nil
}

// CreateVessel registers a vessel. State defaults to ACTIVA.
//
// Returns:
//   - error: catalog.ErrVesselConflict on a duplicate name.
//   - error: catalog.ErrInvalidCapacity / ErrInvalidState on bad input.
func (s *Service) CreateVessel(ctx context.Context, in VesselInput) (*domain.Vessel, error) {
	const op = "service.catalog.CreateVessel"

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if in.State == "" {
		in.State = domain.VesselActive
	}

	v := &domain.Vessel{
		Name:     strings.TrimSpace(in.Name),
		Capacity: in.Capacity,
		Type:     strings.TrimSpace(in.Type),
		State:    in.State,
	}

	id, err := s.store.Catalog().CreateVessel(ctx, v)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrVesselConflict)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	v.ID = id

	return v, nil
}

// UpdateVessel replaces the mutable fields of a vessel. Lowering the capacity
// never touches existing sales; future availability checks simply see the new
// ceiling.
func (s *Service) UpdateVessel(ctx context.Context, id int64, in VesselInput) (*domain.Vessel, error) {
	const op = "service.catalog.UpdateVessel"

	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if in.State == "" {
		in.State = domain.VesselActive
	}

	v := &domain.Vessel{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Capacity: in.Capacity,
		Type:     strings.TrimSpace(in.Type),
		State:    in.State,
	}

	if err := s.store.Catalog().UpdateVessel(ctx, v); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("%s:%w", op, ErrVesselConflict)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}

func (s *Service) GetVessel(ctx context.Context, id int64) (*domain.Vessel, error) {
	const op = "service.catalog.GetVessel"

	v, err := s.store.Catalog().GetVessel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return v, nil
}

func (s *Service) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	const op = "service.catalog.ListVessels"

	out, err := s.store.Catalog().ListVessels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// DeactivateVessel moves a vessel to INACTIVA, keeping its history. New
// sales against it are refused by the sale path.
//
// Returns:
//   - error: catalog.ErrVesselNotFound if the vessel does not exist.
func (s *Service) DeactivateVessel(ctx context.Context, id int64) error {
	const op = "service.catalog.DeactivateVessel"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Catalog().With(tx)

		v, err := repo.GetVessel(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrVesselNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		v.State = domain.VesselInactive

		if err := repo.UpdateVessel(ctx, v); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
}

// DeleteVessel physically removes a vessel that was never referenced by a
// sale or a schedule. Referenced vessels should be put in INACTIVA instead.
//
// Returns:
//   - error: catalog.ErrInUse if sales or schedules reference the vessel.
//   - error: catalog.ErrVesselNotFound if the vessel does not exist.
func (s *Service) DeleteVessel(ctx context.Context, id int64) error {
	const op = "service.catalog.DeleteVessel"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		repo := s.store.Catalog().With(tx)

		inUse, err := repo.VesselInUse(ctx, id)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if inUse {
			return fmt.Errorf("%s:%w", op, ErrInUse)
		}

		if err := repo.DeleteVessel(ctx, id); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrVesselNotFound)
			case errors.Is(err, repository.ErrInUse):
				return fmt.Errorf("%s:%w", op, ErrInUse)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		return nil
	})
}

// ScheduleInput assigns a vessel to a route with departure times ("HH:MM")
// and operating days (LUNES..DOMINGO).
type ScheduleInput struct {
	VesselID       int64
	RouteID        int64
	DepartureTimes []string
	OperatingDays  []string
}

func (in ScheduleInput) normalize() (ScheduleInput, error) {
	if len(in.DepartureTimes) == 0 || len(in.OperatingDays) == 0 {
		return in, ErrInvalidSchedule
	}

	for _, t := range in.DepartureTimes {
		if !domain.ValidClock(t) {
			return in, ErrInvalidSchedule
		}
	}

	days := make([]string, len(in.OperatingDays))
	for i, d := range in.OperatingDays {
		days[i] = strings.ToUpper(strings.TrimSpace(d))
		if !domain.ValidOperatingDay(days[i]) {
			return in, ErrInvalidSchedule
		}
	}

	in.OperatingDays = days

	return in, nil
}

// AssignVesselRoute creates an active schedule assignment. The partial unique
// index on (vessel, route) WHERE activo rejects a second active assignment.
//
// Returns:
//   - error: catalog.ErrScheduleConflict if an active assignment exists.
//   - error: catalog.ErrVesselNotFound / ErrRouteNotFound on bad references.
//   - error: catalog.ErrInvalidSchedule on empty or malformed times/days.
func (s *Service) AssignVesselRoute(ctx context.Context, in ScheduleInput) (*domain.VesselRoute, error) {
	const op = "service.catalog.AssignVesselRoute"

	in, err := in.normalize()
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.store.Catalog().GetVessel(ctx, in.VesselID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.store.Catalog().GetRoute(ctx, in.RouteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	vr := &domain.VesselRoute{
		VesselID:       in.VesselID,
		RouteID:        in.RouteID,
		DepartureTimes: in.DepartureTimes,
		OperatingDays:  in.OperatingDays,
		Active:         true,
	}

	id, err := s.store.Catalog().CreateVesselRoute(ctx, vr)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s:%w", op, ErrScheduleConflict)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	vr.ID = id

	return vr, nil
}

// ListVesselRoutes lists schedule assignments, all of them when vesselID is 0.
func (s *Service) ListVesselRoutes(ctx context.Context, vesselID int64) ([]domain.VesselRoute, error) {
	const op = "service.catalog.ListVesselRoutes"

	out, err := s.store.Catalog().ListVesselRoutes(ctx, vesselID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// AssignOperator binds an operator user to a vessel. A vessel holds at most
// one active operator at a time.
//
// Returns:
//   - error: catalog.ErrVesselNotFound if the vessel does not exist.
//   - error: catalog.ErrUserNotFound if the user is not an operator.
//   - error: catalog.ErrOperatorConflict if the vessel already has one.
func (s *Service) AssignOperator(ctx context.Context, userID, vesselID int64) error {
	const op = "service.catalog.AssignOperator"

	if _, err := s.store.Catalog().GetVessel(ctx, vesselID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Users().AssignOperator(ctx, userID, vesselID, s.now().UTC()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%s:%w", op, ErrUserNotFound)
		case errors.Is(err, repository.ErrConflict):
			return fmt.Errorf("%s:%w", op, ErrOperatorConflict)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
