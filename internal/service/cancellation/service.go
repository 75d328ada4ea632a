package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
	postgresrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/postgres"
	redisrepo "github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository/redis"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/service/sales"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/uow"
)

type Config struct {
	Location *time.Location
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub sales.OccurrencePublisher
	uow    *uow.UoW
	cfg    Config
	now    func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub sales.OccurrencePublisher,
	cfg Config,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Cancel transitions a confirmed sale to ANULADA or REEMBOLSADA and records
// the anulación, both in one transaction. Seats come back automatically:
// availability is derived from CONFIRMADA sales, so there is no separate
// release step.
//
// Preconditions are checked in a fixed order, each with its own sentinel:
// existence, state, prior anulación, authorization, vendor time window,
// refund amount. The unique index on anulaciones(venta_id) backs the
// at-most-once guarantee even if two cancellations race past the read.
//
// Returns:
//   - *domain.CancelResult: the anulación, the updated sale, and the seats
//     released.
//   - error: cancellation.ErrSaleNotFound / ErrInvalidState /
//     ErrAlreadyCancelled / ErrForbidden / ErrTripDeparted / ErrInvalidType /
//     ErrInvalidReason / ErrInvalidRefund.
func (s *Service) Cancel(
	ctx context.Context,
	saleID uuid.UUID,
	caller Caller,
	req Request,
) (*domain.CancelResult, error) {
	const op = "service.cancellation.Cancel"

	if err := req.validateShape(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var result domain.CancelResult

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		sale, err := s.store.Sales().With(tx).Get(ctx, saleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrSaleNotFound)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		target := req.Type.TargetSaleState()
		if !sale.State.CanTransitionTo(target) {
			return fmt.Errorf("%s: cannot cancel a sale in state %s: %w", op, sale.State, ErrInvalidState)
		}

		if _, err := s.store.Cancellations().With(tx).GetBySale(ctx, saleID); err == nil {
			return fmt.Errorf("%s:%w", op, ErrAlreadyCancelled)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, err)
		}

		now := s.now()

		if err := authorize(sale, caller, now, s.cfg.Location); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := validateRefund(sale, req); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		anulacion := domain.Cancellation{
			ID:            uuid.New(),
			SaleID:        sale.ID,
			Reason:        req.Reason,
			Notes:         req.Notes,
			ActingUserID:  caller.ID,
			SeatsReleased: sale.PassengerCount,
			Type:          req.Type,
			CreatedAt:     now.UTC(),
		}
		if req.Type == domain.CancellationRefund {
			anulacion.RefundCent = req.RefundCent
		}

		if err := s.store.Cancellations().With(tx).Create(ctx, &anulacion); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyCancelled)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		notes := domain.AppendNoteLine(
			sale.Notes,
			domain.CancellationNoteLine(req.Type, req.Reason, req.Notes, now.In(s.cfg.Location)),
		)

		if err := s.store.Sales().With(tx).Transition(ctx, sale.ID, domain.SaleConfirmed, target, notes); err != nil {
			if errors.Is(err, repository.ErrStateChanged) {
				return fmt.Errorf("%s:%w", op, ErrInvalidState)
			}

			return fmt.Errorf("%s:%w", op, err)
		}

		updated := *sale
		updated.State = target
		updated.Notes = notes

		result = domain.CancelResult{
			Cancellation:  anulacion,
			UpdatedSale:   updated,
			SeatsReleased: sale.PassengerCount,
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

	return &result, nil
}
