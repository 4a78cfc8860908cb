package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db *sql.DB
	tx *TxRunner
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db *sql.DB) *RoleRepo {
	return &RoleRepo{db: db, tx: NewTxRunner(db)}
}

// List devuelve todos los roles ordenados por id.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, rol, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, storageError("list roles", err)
	}
	defer rows.Close()

	list := make([]*entity.Role, 0)
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Rol, &role.CreatedAt); err != nil {
			return nil, storageError("scan role", err)
		}
		list = append(list, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list roles", err)
	}
	return list, nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRowContext(ctx, `SELECT id, rol, created_at FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Rol, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError("get role", err)
	}
	return &role, nil
}

// Create inserta el rol; un nombre repetido devuelve domain.ErrConflict.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	return r.tx.Run(ctx, func(q Querier) error {
		err := q.QueryRowContext(ctx, `INSERT INTO roles (rol) VALUES ($1) RETURNING id, created_at`, role.Rol).
			Scan(&role.ID, &role.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return storageError("insert role", err)
		}
		return nil
	})
}

// Update reemplaza el nombre; domain.ErrConflict si ya lo usa otro rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	return r.tx.Run(ctx, func(q Querier) error {
		err := q.QueryRowContext(ctx, `UPDATE roles SET rol = $2 WHERE id = $1 RETURNING created_at`, role.ID, role.Rol).
			Scan(&role.CreatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return domain.ErrNotFound
			case isUniqueViolation(err):
				return domain.ErrConflict
			}
			return storageError("update role", err)
		}
		return nil
	})
}

// Delete elimina el rol.
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	return r.tx.Run(ctx, func(q Querier) error {
		return deleteByID(ctx, q, "roles", id)
	})
}
