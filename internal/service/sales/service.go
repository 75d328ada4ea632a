package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	redisrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/uow"
)

type Config struct {
	// IGVBasisPoints is the configured tax rate, e.g. 1800 for 18%.
	IGVBasisPoints int64
	Location       *time.Location
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  OccurrencePublisher
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
	now     func() time.Time
}

// OccurrencePublisher fans out committed seat-count changes.
type OccurrencePublisher interface {
	PublishOccurrenceChanged(ctx context.Context, occ domain.Occurrence) error
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub OccurrencePublisher,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.IGVBasisPoints <= 0 {
		cfg.IGVBasisPoints = 1800
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Create creates a sale against one trip occurrence, reserving its seats
// atomically.
//
// The unit price is pinned from the route at this moment; later route price
// changes never touch existing sales. The capacity check runs inside the
// same serializable transaction as the insert, so concurrent requests for
// the last seats cannot both succeed.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sellerID: the authenticated seller creating the sale.
//   - in: sale input; see CreateInput.
//   - rlKey: rate-limit key for the submitting client, empty to skip.
//
// Returns:
//   - *domain.Sale: the persisted sale, state CONFIRMADA.
//   - error: sales.ErrNoAvailability when the occurrence cannot seat the
//     requested passengers.
//   - error: sales.ErrRouteNotFound / ErrRouteInactive / ErrVesselNotFound /
//     ErrVesselUnavailable / ErrPortNotFound on reference failures.
//   - error: validation sentinels from CreateInput normalization.
func (s *Service) Create(ctx context.Context, sellerID int64, in CreateInput, rlKey string) (*domain.Sale, error) {
	const op = "service.sales.Create"

	in, err := in.normalize(s.now(), s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	route, err := s.store.Catalog().GetRoute(ctx, in.RouteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrRouteNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !route.Active {
		return nil, fmt.Errorf("%s:%w", op, ErrRouteInactive)
	}

	vessel, err := s.store.Catalog().GetVessel(ctx, in.VesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVesselNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if vessel.State != domain.VesselActive {
		return nil, fmt.Errorf("%s:%w", op, ErrVesselUnavailable)
	}

	if _, err := s.store.Catalog().GetPort(ctx, in.BoardingPortID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrPortNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	pricing := domain.ComputePricing(route.PriceCentimos, in.PassengerCount, s.cfg.IGVBasisPoints)

	sale := &domain.Sale{
		ID:             uuid.New(),
		Number:         "V-" + shortuuid.New(),
		RouteID:        in.RouteID,
		VesselID:       in.VesselID,
		SellerID:       sellerID,
		TravelDate:     in.TravelDate,
		TravelTime:     in.TravelTime,
		BoardingTime:   in.BoardingTime,
		BoardingPortID: in.BoardingPortID,
		PassengerCount: in.PassengerCount,
		UnitPriceCent:  pricing.UnitPriceCent,
		SubtotalCent:   pricing.SubtotalCent,
		TaxCent:        pricing.TaxCent,
		TotalCent:      pricing.TotalCent,
		PaymentMethod:  in.PaymentMethod,
		State:          domain.SaleConfirmed,
		Notes:          in.Notes,
		CreatedAt:      s.now().UTC(),
	}

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		customerID, err := s.store.Customers().With(tx).Upsert(ctx, &domain.Customer{
			DNI:         in.Customer.DNI,
			Name:        in.Customer.Name,
			Surname:     in.Customer.Surname,
			Phone:       in.Customer.Phone,
			Email:       in.Customer.Email,
			Nationality: in.Customer.Nationality,
			Address:     in.Customer.Address,
		})
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		sale.CustomerID = customerID

		if err := s.store.Sales().With(tx).Create(ctx, sale); err != nil {
			if errors.Is(err, repository.ErrNoAvailability) {
				return fmt.Errorf("%s:%w", op, ErrNoAvailability)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		occ := sale.Occurrence()
		after(func(ctx context.Context) {
			_ = s.cache.InvalidateOccurrence(ctx, occ)
			_ = s.pubsub.PublishOccurrenceChanged(ctx, occ)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// Get retrieves a sale with its customer.
//
// Returns:
//   - error: sales.ErrSaleNotFound if the sale does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.SaleWithCustomer, error) {
	const op = "service.sales.Get"

	out, err := s.store.Sales().GetWithCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrSaleNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
