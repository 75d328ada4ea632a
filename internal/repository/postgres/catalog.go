package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// CreateRoute inserts a route. Unique indexes on lower(nombre) and on
// (lower(origen), lower(destino)) are the actual duplicate enforcement.
//
// Returns:
//   - error: repository.ErrConflict on a duplicate name or trajectory.
func (r *CatalogRepo) CreateRoute(ctx context.Context, rt *domain.Route) (int64, error) {
	const op = "postgres.CatalogRepo.CreateRoute"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO rutas (nombre, origen, destino, precio_centimos, activa)
     	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		rt.Name, rt.Origin, rt.Destination, rt.PriceCentimos, rt.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// GetRoute retrieves a route by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the route does not exist.
func (r *CatalogRepo) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	const op = "postgres.CatalogRepo.GetRoute"

	db := r.handle()

	var rt domain.Route
	err := db.QueryRow(ctx,
		`SELECT id, nombre, origen, destino, precio_centimos, activa
       	 FROM rutas WHERE id = $1`,
		id,
	).Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.PriceCentimos, &rt.Active)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &rt, nil
}

func (r *CatalogRepo) ListRoutes(ctx context.Context, onlyActive bool) ([]domain.Route, error) {
	const op = "postgres.CatalogRepo.ListRoutes"

	db := r.handle()

	q := `SELECT id, nombre, origen, destino, precio_centimos, activa
      	  FROM rutas ORDER BY nombre`
	if onlyActive {
		q = `SELECT id, nombre, origen, destino, precio_centimos, activa
         	 FROM rutas WHERE activa ORDER BY nombre`
	}

	rows, err := db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Route
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.PriceCentimos, &rt.Active); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// UpdateRoute updates the mutable route fields. Sale pricing is unaffected:
// unit prices are pinned onto each sale at creation time.
func (r *CatalogRepo) UpdateRoute(ctx context.Context, rt *domain.Route) error {
	const op = "postgres.CatalogRepo.UpdateRoute"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE rutas
        	SET nombre = $2, origen = $3, destino = $4, precio_centimos = $5, activa = $6
      	 WHERE id = $1`,
		rt.ID, rt.Name, rt.Origin, rt.Destination, rt.PriceCentimos, rt.Active,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// DeactivateRoute soft-deactivates a route. Routes referenced by sales or
// schedule assignments are never physically deleted.
func (r *CatalogRepo) DeactivateRoute(ctx context.Context, id int64) error {
	const op = "postgres.CatalogRepo.DeactivateRoute"

	db := r.handle()

	tag, err := db.Exec(ctx, `UPDATE rutas SET activa = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// DeleteRoute physically removes a route. Callers must check RouteInUse
// first; a foreign-key violation still comes back as repository.ErrInUse.
func (r *CatalogRepo) DeleteRoute(ctx context.Context, id int64) error {
	const op = "postgres.CatalogRepo.DeleteRoute"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM rutas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// RouteHasTrajectory reports whether another route already covers the same
// (origin, destination) pair, case-insensitively.
func (r *CatalogRepo) RouteHasTrajectory(ctx context.Context, origin, destination string, excludeID int64) (bool, error) {
	const op = "postgres.CatalogRepo.RouteHasTrajectory"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
        	SELECT 1 FROM rutas
        	 WHERE lower(origen) = lower($1)
           	   AND lower(destino) = lower($2)
           	   AND id <> $3
     	 )`,
		origin, destination, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// CreateVessel inserts a vessel; unique index on lower(nombre).
//
// Returns:
//   - error: repository.ErrConflict on a duplicate name.
func (r *CatalogRepo) CreateVessel(ctx context.Context, v *domain.Vessel) (int64, error) {
	const op = "postgres.CatalogRepo.CreateVessel"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO embarcaciones (nombre, capacidad, tipo, estado)
     	 VALUES ($1, $2, $3, $4)
     	 RETURNING id`,
		v.Name, v.Capacity, v.Type, v.State,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// GetVessel retrieves a vessel by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the vessel does not exist.
func (r *CatalogRepo) GetVessel(ctx context.Context, id int64) (*domain.Vessel, error) {
	const op = "postgres.CatalogRepo.GetVessel"

	db := r.handle()

	var v domain.Vessel
	err := db.QueryRow(ctx,
		`SELECT id, nombre, capacidad, tipo, estado
       	 FROM embarcaciones WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Capacity, &v.Type, &v.State)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &v, nil
}

func (r *CatalogRepo) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	const op = "postgres.CatalogRepo.ListVessels"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, nombre, capacidad, tipo, estado
       	 FROM embarcaciones ORDER BY nombre`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Vessel
	for rows.Next() {
		var v domain.Vessel
		if err := rows.Scan(&v.ID, &v.Name, &v.Capacity, &v.Type, &v.State); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateVessel(ctx context.Context, v *domain.Vessel) error {
	const op = "postgres.CatalogRepo.UpdateVessel"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE embarcaciones
        	SET nombre = $2, capacidad = $3, tipo = $4, estado = $5
      	 WHERE id = $1`,
		v.ID, v.Name, v.Capacity, v.Type, v.State,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// DeleteVessel physically removes a vessel. Callers must check VesselInUse
// first; a foreign-key violation still comes back as repository.ErrInUse.
func (r *CatalogRepo) DeleteVessel(ctx context.Context, id int64) error {
	const op = "postgres.CatalogRepo.DeleteVessel"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM embarcaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// VesselInUse reports whether the vessel has sales or schedule assignments,
// which blocks deletion.
func (r *CatalogRepo) VesselInUse(ctx context.Context, id int64) (bool, error) {
	const op = "postgres.CatalogRepo.VesselInUse"

	db := r.handle()

	var inUse bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ventas WHERE embarcacion_id = $1)
         	 OR EXISTS (SELECT 1 FROM embarcacion_rutas WHERE embarcacion_id = $1)`,
		id,
	).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return inUse, nil
}

// RouteInUse reports whether the route has sales or schedule assignments.
func (r *CatalogRepo) RouteInUse(ctx context.Context, id int64) (bool, error) {
	const op = "postgres.CatalogRepo.RouteInUse"

	db := r.handle()

	var inUse bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ventas WHERE ruta_id = $1)
         	 OR EXISTS (SELECT 1 FROM embarcacion_rutas WHERE ruta_id = $1)`,
		id,
	).Scan(&inUse)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return inUse, nil
}

// CreateVesselRoute inserts a schedule assignment. A partial unique index on
// (embarcacion_id, ruta_id) WHERE activo enforces at most one active
// assignment per pair; the same vessel may serve other routes freely.
//
// Returns:
//   - error: repository.ErrConflict if an active assignment already exists.
func (r *CatalogRepo) CreateVesselRoute(ctx context.Context, vr *domain.VesselRoute) (int64, error) {
	const op = "postgres.CatalogRepo.CreateVesselRoute"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO embarcacion_rutas (embarcacion_id, ruta_id, horas_salida, dias_operacion, activo)
     	 VALUES ($1, $2, $3, $4, $5)
     	 RETURNING id`,
		vr.VesselID, vr.RouteID, vr.DepartureTimes, vr.OperatingDays, vr.Active,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

func (r *CatalogRepo) ListVesselRoutes(ctx context.Context, vesselID int64) ([]domain.VesselRoute, error) {
	const op = "postgres.CatalogRepo.ListVesselRoutes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, embarcacion_id, ruta_id, horas_salida, dias_operacion, activo
       	 FROM embarcacion_rutas
      	 WHERE embarcacion_id = $1 OR $1 = 0
      	 ORDER BY id`,
		vesselID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.VesselRoute
	for rows.Next() {
		var vr domain.VesselRoute
		if err := rows.Scan(&vr.ID, &vr.VesselID, &vr.RouteID, &vr.DepartureTimes, &vr.OperatingDays, &vr.Active); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, vr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// GetPort retrieves a boarding port by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the port does not exist.
func (r *CatalogRepo) GetPort(ctx context.Context, id int64) (*domain.Port, error) {
	const op = "postgres.CatalogRepo.GetPort"

	db := r.handle()

	var p domain.Port
	err := db.QueryRow(ctx,
		`SELECT id, nombre, ciudad FROM puertos WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.City)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &p, nil
}
