package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
)

type CustomerRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CustomerRepo) With(db DB) *CustomerRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CustomerRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetByDNI retrieves a customer by normalized DNI (exact match).
//
// Returns:
//   - error: repository.ErrNotFound if no customer carries this DNI.
func (r *CustomerRepo) GetByDNI(ctx context.Context, dni string) (*domain.Customer, error) {
	const op = "postgres.CustomerRepo.GetByDNI"

	db := r.handle()

	var c domain.Customer
	err := db.QueryRow(ctx,
		`SELECT id, dni, nombre, apellido, telefono, email, nacionalidad, direccion
       	 FROM clientes WHERE dni = $1`,
		dni,
	).Scan(&c.ID, &c.DNI, &c.Name, &c.Surname, &c.Phone, &c.Email, &c.Nationality, &c.Address)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &c, nil
}

// Upsert resolves a customer by DNI, creating it on first sight and refreshing
// contact fields on subsequent sales. Returns the customer ID either way.
func (r *CustomerRepo) Upsert(ctx context.Context, c *domain.Customer) (int64, error) {
	const op = "postgres.CustomerRepo.Upsert"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO clientes (dni, nombre, apellido, telefono, email, nacionalidad, direccion)
     	 VALUES ($1, $2, $3, $4, $5, $6, $7)
     	 ON CONFLICT (dni) DO UPDATE
        	SET telefono = EXCLUDED.telefono,
            	email = EXCLUDED.email,
            	direccion = EXCLUDED.direccion
     	 RETURNING id`,
		c.DNI, c.Name, c.Surname, c.Phone, c.Email, c.Nationality, c.Address,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// HasSales reports whether the customer is referenced by any sale, which
// blocks deletion.
func (r *CustomerRepo) HasSales(ctx context.Context, id int64) (bool, error) {
	const op = "postgres.CustomerRepo.HasSales"

	db := r.handle()

	var has bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ventas WHERE cliente_id = $1)`,
		id,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return has, nil
}
