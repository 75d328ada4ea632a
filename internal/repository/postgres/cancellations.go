package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

type AnulacionRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AnulacionRepo) With(db DB) *AnulacionRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AnulacionRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts the anulación record. The unique index on venta_id is the
// hard at-most-once enforcement; the service-level existence check is only
// the fast path.
//
// Returns:
//   - error: repository.ErrConflict if the sale already has an anulación.
func (r *AnulacionRepo) Create(ctx context.Context, a *domain.Cancellation) error {
	const op = "postgres.AnulacionRepo.Create"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO anulaciones (
        	id, venta_id, motivo, observaciones, usuario_id,
        	asientos_liberados, monto_reembolso_centimos, tipo_anulacion, creado_en
     	 )
     	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.SaleID, a.Reason, a.Notes, a.ActingUserID,
		a.SeatsReleased, a.RefundCent, a.Type, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// GetBySale retrieves the anulación for a sale, if any.
//
// Returns:
//   - error: repository.ErrNotFound if no anulación exists for the sale.
func (r *AnulacionRepo) GetBySale(ctx context.Context, saleID uuid.UUID) (*domain.Cancellation, error) {
	const op = "postgres.AnulacionRepo.GetBySale"

	db := r.handle()

	var a domain.Cancellation
	err := db.QueryRow(ctx,
		`SELECT id, venta_id, motivo, observaciones, usuario_id,
            	asientos_liberados, monto_reembolso_centimos, tipo_anulacion, creado_en
       	 FROM anulaciones
      	 WHERE venta_id = $1`,
		saleID,
	).Scan(
		&a.ID, &a.SaleID, &a.Reason, &a.Notes, &a.ActingUserID,
		&a.SeatsReleased, &a.RefundCent, &a.Type, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &a, nil
}
