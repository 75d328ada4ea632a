package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
)

type BoardingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BoardingRepo) With(db DB) *BoardingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BoardingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// BackfillPending creates a PENDIENTE record for every confirmed sale on the
// occurrence that lacks one. ON CONFLICT DO NOTHING makes the backfill safe
// under concurrent operators opening the same trip: duplicates are absorbed,
// never surfaced. A zero RouteID matches every route the vessel serves at
// that departure; the same convention holds for the list queries below.
func (r *BoardingRepo) BackfillPending(ctx context.Context, occ domain.Occurrence) (int64, error) {
	const op = "postgres.BoardingRepo.BackfillPending"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`INSERT INTO controles_embarque (
        	id, venta_id, embarcacion_id, ruta_id, fecha_viaje, hora_viaje,
        	estado_embarque, observaciones, tipo_registro
     	 )
     	 SELECT gen_random_uuid(), v.id, v.embarcacion_id, v.ruta_id, v.fecha_viaje, v.hora_viaje,
            	$5, '', 'EMBARQUE'
       	 FROM ventas v
      	 WHERE v.embarcacion_id = $1
        	AND ($2 = 0 OR v.ruta_id = $2)
        	AND v.fecha_viaje = $3
        	AND v.hora_viaje = $4
        	AND v.estado = $6
     	 ON CONFLICT (venta_id, embarcacion_id, ruta_id, fecha_viaje, hora_viaje) DO NOTHING`,
		occ.VesselID, occ.RouteID, occ.TravelDate, occ.TravelTime,
		domain.BoardingPending, domain.SaleConfirmed,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected(), nil
}

// ListPassengers returns the boarding records for an occurrence joined with
// sale and customer data, ordered by sale number.
func (r *BoardingRepo) ListPassengers(ctx context.Context, occ domain.Occurrence) ([]domain.PassengerView, error) {
	const op = "postgres.BoardingRepo.ListPassengers"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT ce.id, ce.venta_id, ce.operador_id, ce.embarcacion_id, ce.ruta_id,
            	ce.fecha_viaje, ce.hora_viaje, ce.estado_embarque, ce.registrado_en,
            	ce.observaciones, ce.tipo_registro,
            	v.numero_venta, v.cantidad_pasajeros,
            	c.dni, c.nombre || ' ' || c.apellido
       	 FROM controles_embarque ce
       	 JOIN ventas v ON v.id = ce.venta_id
       	 JOIN clientes c ON c.id = v.cliente_id
      	 WHERE ce.embarcacion_id = $1
        	AND ($2 = 0 OR ce.ruta_id = $2)
        	AND ce.fecha_viaje = $3
        	AND ce.hora_viaje = $4
      	 ORDER BY v.numero_venta`,
		occ.VesselID, occ.RouteID, occ.TravelDate, occ.TravelTime,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.PassengerView
	for rows.Next() {
		var pv domain.PassengerView
		ce := &pv.Control

		if err := rows.Scan(
			&ce.ID, &ce.SaleID, &ce.OperatorID, &ce.VesselID, &ce.RouteID,
			&ce.TravelDate, &ce.TravelTime, &ce.State, &ce.RegisteredAt,
			&ce.Notes, &ce.RecordType,
			&pv.SaleNumber, &pv.PassengerCount,
			&pv.CustomerDNI, &pv.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Get retrieves one boarding record.
//
// Returns:
//   - error: repository.ErrNotFound if the record does not exist.
func (r *BoardingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.BoardingControl, error) {
	const op = "postgres.BoardingRepo.Get"

	db := r.handle()

	var ce domain.BoardingControl
	err := db.QueryRow(ctx,
		`SELECT id, venta_id, operador_id, embarcacion_id, ruta_id,
            	fecha_viaje, hora_viaje, estado_embarque, registrado_en,
            	observaciones, tipo_registro
       	 FROM controles_embarque
      	 WHERE id = $1`,
		id,
	).Scan(
		&ce.ID, &ce.SaleID, &ce.OperatorID, &ce.VesselID, &ce.RouteID,
		&ce.TravelDate, &ce.TravelTime, &ce.State, &ce.RegisteredAt,
		&ce.Notes, &ce.RecordType,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &ce, nil
}

// SetState moves a PENDIENTE record to its terminal state, stamping the
// operator and registration time. The estado guard in the WHERE clause keeps
// terminal records immutable even under concurrent operators.
//
// Returns:
//   - error: repository.ErrStateChanged if the record was no longer PENDIENTE.
func (r *BoardingRepo) SetState(
	ctx context.Context,
	id uuid.UUID,
	state domain.BoardingState,
	operatorID int64,
	notes string,
	at time.Time,
) error {
	const op = "postgres.BoardingRepo.SetState"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE controles_embarque
        	SET estado_embarque = $2, operador_id = $3, registrado_en = $4, observaciones = $5
      	 WHERE id = $1 AND estado_embarque = $6`,
		id, state, operatorID, at, notes, domain.BoardingPending,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrStateChanged)
	}

	return nil
}

// ListByOccurrence returns the bare boarding records for stats aggregation.
func (r *BoardingRepo) ListByOccurrence(ctx context.Context, occ domain.Occurrence) ([]domain.BoardingControl, error) {
	const op = "postgres.BoardingRepo.ListByOccurrence"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, venta_id, operador_id, embarcacion_id, ruta_id,
            	fecha_viaje, hora_viaje, estado_embarque, registrado_en,
            	observaciones, tipo_registro
       	 FROM controles_embarque
      	 WHERE embarcacion_id = $1
        	AND ($2 = 0 OR ruta_id = $2)
        	AND fecha_viaje = $3
        	AND hora_viaje = $4`,
		occ.VesselID, occ.RouteID, occ.TravelDate, occ.TravelTime,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.BoardingControl
	for rows.Next() {
		var ce domain.BoardingControl
		if err := rows.Scan(
			&ce.ID, &ce.SaleID, &ce.OperatorID, &ce.VesselID, &ce.RouteID,
			&ce.TravelDate, &ce.TravelTime, &ce.State, &ce.RegisteredAt,
			&ce.Notes, &ce.RecordType,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, ce)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
