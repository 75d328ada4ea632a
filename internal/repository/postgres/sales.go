package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
)

type SaleRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *SaleRepo) With(db DB) *SaleRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *SaleRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// SoldSeats sums confirmed passengers for one occurrence. Cancelled and
// refunded sales release their seats by falling out of this sum.
func (r *SaleRepo) SoldSeats(ctx context.Context, occ domain.Occurrence) (int, error) {
	const op = "postgres.SaleRepo.SoldSeats"

	db := r.handle()

	var sold int
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(cantidad_pasajeros), 0)
       	 FROM ventas
      	 WHERE embarcacion_id = $1
        	AND ruta_id = $2
        	AND fecha_viaje = $3
        	AND hora_viaje = $4
        	AND estado = $5`,
		occ.VesselID, occ.RouteID, occ.TravelDate, occ.TravelTime, domain.SaleConfirmed,
	).Scan(&sold)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return sold, nil
}

// Create inserts the sale only while the occurrence still has room for its
// passengers: the capacity condition is evaluated inside the INSERT itself,
// so two concurrent sales cannot both squeeze past the ceiling regardless of
// what an earlier availability read said.
//
// Returns:
//   - error: repository.ErrNoAvailability when the conditional insert matched
//     no row (capacity exhausted, or the vessel is gone).
//   - error: repository.ErrConflict on a duplicate sale number.
func (r *SaleRepo) Create(ctx context.Context, s *domain.Sale) error {
	const op = "postgres.SaleRepo.Create"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`INSERT INTO ventas (
        	id, numero_venta, cliente_id, ruta_id, embarcacion_id, vendedor_id,
        	fecha_viaje, hora_viaje, hora_embarque, puerto_embarque_id,
        	cantidad_pasajeros, precio_unitario_centimos, subtotal_centimos,
        	igv_centimos, total_centimos, metodo_pago, estado, observaciones, creado_en
     	 )
     	 SELECT $1, $2, $3, $4, $5, $6,
            	$7, $8, $9, $10,
            	$11, $12, $13,
            	$14, $15, $16, $17, $18, $19
       	 FROM embarcaciones e
      	 WHERE e.id = $5
        	AND e.capacidad >= $11 + COALESCE((
            	SELECT SUM(v.cantidad_pasajeros)
              	FROM ventas v
             	WHERE v.embarcacion_id = $5
               	AND v.ruta_id = $4
               	AND v.fecha_viaje = $7
               	AND v.hora_viaje = $8
               	AND v.estado = $17
        	), 0)`,
		s.ID, s.Number, s.CustomerID, s.RouteID, s.VesselID, s.SellerID,
		s.TravelDate, s.TravelTime, s.BoardingTime, s.BoardingPortID,
		s.PassengerCount, s.UnitPriceCent, s.SubtotalCent,
		s.TaxCent, s.TotalCent, s.PaymentMethod, s.State, s.Notes, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNoAvailability)
	}

	return nil
}

// Get retrieves a sale by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the sale does not exist.
func (r *SaleRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	const op = "postgres.SaleRepo.Get"

	db := r.handle()

	var s domain.Sale
	err := db.QueryRow(ctx,
		`SELECT id, numero_venta, cliente_id, ruta_id, embarcacion_id, vendedor_id,
            	fecha_viaje, hora_viaje, hora_embarque, puerto_embarque_id,
            	cantidad_pasajeros, precio_unitario_centimos, subtotal_centimos,
            	igv_centimos, total_centimos, metodo_pago, estado, observaciones, creado_en
       	 FROM ventas
      	 WHERE id = $1`,
		id,
	).Scan(
		&s.ID, &s.Number, &s.CustomerID, &s.RouteID, &s.VesselID, &s.SellerID,
		&s.TravelDate, &s.TravelTime, &s.BoardingTime, &s.BoardingPortID,
		&s.PassengerCount, &s.UnitPriceCent, &s.SubtotalCent,
		&s.TaxCent, &s.TotalCent, &s.PaymentMethod, &s.State, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &s, nil
}

// GetWithCustomer retrieves a sale joined with its customer.
func (r *SaleRepo) GetWithCustomer(ctx context.Context, id uuid.UUID) (*domain.SaleWithCustomer, error) {
	const op = "postgres.SaleRepo.GetWithCustomer"

	db := r.handle()

	var out domain.SaleWithCustomer
	s := &out.Sale
	c := &out.Customer

	err := db.QueryRow(ctx,
		`SELECT v.id, v.numero_venta, v.cliente_id, v.ruta_id, v.embarcacion_id, v.vendedor_id,
            	v.fecha_viaje, v.hora_viaje, v.hora_embarque, v.puerto_embarque_id,
            	v.cantidad_pasajeros, v.precio_unitario_centimos, v.subtotal_centimos,
            	v.igv_centimos, v.total_centimos, v.metodo_pago, v.estado, v.observaciones, v.creado_en,
            	c.id, c.dni, c.nombre, c.apellido, c.telefono, c.email, c.nacionalidad, c.direccion
       	 FROM ventas v
       	 JOIN clientes c ON c.id = v.cliente_id
      	 WHERE v.id = $1`,
		id,
	).Scan(
		&s.ID, &s.Number, &s.CustomerID, &s.RouteID, &s.VesselID, &s.SellerID,
		&s.TravelDate, &s.TravelTime, &s.BoardingTime, &s.BoardingPortID,
		&s.PassengerCount, &s.UnitPriceCent, &s.SubtotalCent,
		&s.TaxCent, &s.TotalCent, &s.PaymentMethod, &s.State, &s.Notes, &s.CreatedAt,
		&c.ID, &c.DNI, &c.Name, &c.Surname, &c.Phone, &c.Email, &c.Nationality, &c.Address,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &out, nil
}

// Transition flips a sale's state and replaces its notes, guarded on the
// current state so a concurrent transition loses instead of overwriting.
//
// Returns:
//   - error: repository.ErrStateChanged if the sale was no longer in `from`.
func (r *SaleRepo) Transition(
	ctx context.Context,
	id uuid.UUID,
	from, to domain.SaleState,
	notes string,
) error {
	const op = "postgres.SaleRepo.Transition"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE ventas
        	SET estado = $3, observaciones = $4
      	 WHERE id = $1 AND estado = $2`,
		id, from, to, notes,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrStateChanged)
	}

	return nil
}
