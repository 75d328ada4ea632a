package boarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/uow"
)

type Config struct {
	Location *time.Location
}

// Service tracks per-sale boarding for trip occurrences. Records are created
// lazily: sales exist long before any operator opens the boarding screen, so
// every list call backfills PENDIENTE rows first.
type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
	cfg   Config
	now   func() time.Time
}

func New(store *postgresrepo.Store, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
		now:   time.Now,
	}
}

// activeOperator loads the caller and verifies they are an active operator
// with an assigned vessel. Claims are not trusted for this: assignment can
// change between token issuance and the request.
func (s *Service) activeOperator(ctx context.Context, operatorID int64) (*domain.User, error) {
	u, err := s.store.Users().Get(ctx, operatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotActiveOperator
		}

		return nil, err
	}

	if u.Role != domain.RoleOperator || !u.Active || u.OperatorStat != domain.OperatorActive || u.VesselID == nil {
		return nil, ErrNotActiveOperator
	}

	return u, nil
}

// ListPassengers returns the passenger list for the operator's vessel at one
// departure, creating missing PENDIENTE records first so the caller always
// sees a fully populated list. routeID narrows to one route; zero means every
// route the vessel serves at that departure.
//
// Returns:
//   - []domain.PassengerView: one entry per confirmed sale on the occurrence.
//   - error: boarding.ErrNotActiveOperator if the caller is not an active
//     operator with an assigned vessel.
func (s *Service) ListPassengers(
	ctx context.Context,
	operatorID int64,
	routeID int64,
	travelDate time.Time,
	travelTime string,
) ([]domain.PassengerView, error) {
	const op = "service.boarding.ListPassengers"

	if !domain.ValidClock(travelTime) {
		return nil, fmt.Errorf("%s:%w", op, ErrBadRequest)
	}

	operator, err := s.activeOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	occ := domain.Occurrence{
		VesselID:   *operator.VesselID,
		RouteID:    routeID,
		TravelDate: domain.DateOnly(travelDate, s.cfg.Location),
		TravelTime: travelTime,
	}

	var out []domain.PassengerView

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if _, err := s.store.Boarding().With(tx).BackfillPending(ctx, occ); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		views, err := s.store.Boarding().With(tx).ListPassengers(ctx, occ)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SetState moves a boarding record from PENDIENTE to EMBARCADO or
// NO_EMBARCADO, stamping the registration time and optional notes. Only the
// active operator assigned to the record's vessel may do this, and only while
// the trip's travel day has not fully elapsed.
//
// Returns:
//   - *domain.BoardingControl: the updated record.
//   - error: boarding.ErrControlNotFound / ErrNotActiveOperator /
//     ErrWrongVessel / ErrTripClosed / ErrInvalidState / ErrInvalidTransition.
func (s *Service) SetState(
	ctx context.Context,
	operatorID int64,
	controlID uuid.UUID,
	newState domain.BoardingState,
	notes string,
) (*domain.BoardingControl, error) {
	const op = "service.boarding.SetState"

	if !newState.Valid() {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidState)
	}

	operator, err := s.activeOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	control, err := s.store.Boarding().Get(ctx, controlID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrControlNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if *operator.VesselID != control.VesselID {
		return nil, fmt.Errorf("%s:%w", op, ErrWrongVessel)
	}

	now := s.now()
	if !now.Before(domain.EndOfTravelDay(control.TravelDate, s.cfg.Location)) {
		return nil, fmt.Errorf("%s:%w", op, ErrTripClosed)
	}

	if !control.State.CanTransitionTo(newState) {
		return nil, fmt.Errorf("%s: %s -> %s: %w", op, control.State, newState, ErrInvalidTransition)
	}

	registeredAt := now.UTC()
	if err := s.store.Boarding().SetState(ctx, controlID, newState, operatorID, notes, registeredAt); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, fmt.Errorf("%s:%w", op, ErrInvalidTransition)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	control.State = newState
	control.OperatorID = &operatorID
	control.RegisteredAt = &registeredAt
	control.Notes = notes

	return control, nil
}

// OccurrenceStats aggregates boarding progress for the operator's vessel at
// one departure.
//
// Returns:
//   - *domain.OccurrenceStats: counters plus boarded percentage and remaining
//     capacity.
//   - error: boarding.ErrVesselNotFound if the assigned vessel is gone.
func (s *Service) OccurrenceStats(
	ctx context.Context,
	operatorID int64,
	routeID int64,
	travelDate time.Time,
	travelTime string,
) (*domain.OccurrenceStats, error) {
	const op = "service.boarding.OccurrenceStats"

	if !domain.ValidClock(travelTime) {
		return nil, fmt.Errorf("%s:%w", op, ErrBadRequest)
	}

	operator, err := s.activeOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	vessel, err := s.store.Catalog().GetVessel(ctx, *operator.VesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	occ := domain.Occurrence{
		VesselID:   vessel.ID,
		RouteID:    routeID,
		TravelDate: domain.DateOnly(travelDate, s.cfg.Location),
		TravelTime: travelTime,
	}

	controls, err := s.store.Boarding().ListByOccurrence(ctx, occ)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	stats := domain.ComputeBoardingStats(controls, vessel.Capacity)

	return &stats, nil
}
