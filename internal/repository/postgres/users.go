package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/domain"
	"github.com/dNogueira300/sistema-pasajes-fluviales-sub002/internal/repository"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetByUsername retrieves a user by login name.
//
// Returns:
//   - error: repository.ErrNotFound if the user does not exist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetByUsername"

	db := r.handle()

	var u domain.User
	var opState *string
	err := db.QueryRow(ctx,
		`SELECT id, usuario, password_hash, rol, activo, embarcacion_id, estado_operador, asignado_en
       	 FROM usuarios WHERE usuario = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.VesselID, &opState, &u.AssignedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if opState != nil {
		u.OperatorStat = domain.OperatorState(*opState)
	}

	return &u, nil
}

// Get retrieves a user by ID.
//
// Returns:
//   - error: repository.ErrNotFound if the user does not exist.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	db := r.handle()

	var u domain.User
	var opState *string
	err := db.QueryRow(ctx,
		`SELECT id, usuario, password_hash, rol, activo, embarcacion_id, estado_operador, asignado_en
       	 FROM usuarios WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Active, &u.VesselID, &opState, &u.AssignedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if opState != nil {
		u.OperatorStat = domain.OperatorState(*opState)
	}

	return &u, nil
}

// AssignOperator binds an operator user to a vessel. The write only succeeds
// while no other ACTIVE operator holds the vessel, so the uniqueness rule is
// enforced by the statement itself rather than a read-then-write sequence.
//
// Returns:
//   - error: repository.ErrConflict if the vessel already has an active operator.
//   - error: repository.ErrNotFound if the user is not an operator.
func (r *UserRepo) AssignOperator(ctx context.Context, userID, vesselID int64, at time.Time) error {
	const op = "postgres.UserRepo.AssignOperator"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE usuarios u
        	SET embarcacion_id = $2, estado_operador = $3, asignado_en = $4
      	 WHERE u.id = $1
        	AND u.rol = $5
        	AND NOT EXISTS (
            	SELECT 1 FROM usuarios o
             	WHERE o.embarcacion_id = $2
               	AND o.estado_operador = $3
               	AND o.id <> $1
        	)`,
		userID, vesselID, domain.OperatorActive, at, domain.RoleOperator,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var isOperator bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM usuarios WHERE id = $1 AND rol = $2)`,
			userID, domain.RoleOperator,
		).Scan(&isOperator); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		if !isOperator {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}

		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}

	return nil
}
