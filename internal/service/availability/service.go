package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	redisx "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	redisrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
)

type Config struct {
	CacheTTL time.Duration
	Location *time.Location
}

// Service computes remaining seats for a trip occurrence. Its answer is a
// fast-path read only: the sale-creation write re-checks capacity inside its
// own transaction, so this cache can never cause oversell.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

type seatCount struct {
	Sold     int `json:"vendidos"`
	Capacity int `json:"capacidad"`
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Second
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Check returns the availability of one occurrence for a requested passenger
// count.
//
// Parameters:
//   - ctx: request-scoped context.
//   - occ: the trip tuple; the travel date is normalized to a calendar day.
//   - requested: number of seats the caller wants.
//
// Returns:
//   - *domain.Availability: remaining seats against vessel capacity.
//   - error: availability.ErrBadRequest on malformed inputs.
//   - error: availability.ErrVesselNotFound if the vessel does not exist.
func (s *Service) Check(ctx context.Context, occ domain.Occurrence, requested int) (*domain.Availability, error) {
	const op = "service.availability.Check"

	if occ.VesselID <= 0 || occ.RouteID <= 0 || requested < 1 || !domain.ValidClock(occ.TravelTime) {
		return nil, fmt.Errorf("%s:%w", op, ErrBadRequest)
	}

	occ.TravelDate = domain.DateOnly(occ.TravelDate, s.cfg.Location)

	key := redisx.KeyOccurrenceAvailability(occ.VesselID, occ.RouteID, occ.TravelDate, occ.TravelTime)

	counts, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.CacheTTL,
		func(ctx context.Context) (seatCount, error) {
			return s.load(ctx, occ)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	remaining := counts.Capacity - counts.Sold

	return &domain.Availability{
		Available: requested <= remaining,
		Remaining: remaining,
		Capacity:  counts.Capacity,
	}, nil
}

func (s *Service) load(ctx context.Context, occ domain.Occurrence) (seatCount, error) {
	vessel, err := s.store.Catalog().GetVessel(ctx, occ.VesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return seatCount{}, ErrVesselNotFound
		}

		return seatCount{}, err
	}

	sold, err := s.store.Sales().SoldSeats(ctx, occ)
	if err != nil {
		return seatCount{}, err
	}

	return seatCount{Sold: sold, Capacity: vessel.Capacity}, nil
}
