package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/gela-api/internal/domain"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password, role_id, created_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db *sql.DB
	tx *TxRunner
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, tx: NewTxRunner(db)}
}

// List devuelve todos los usuarios ordenados por id.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, storageError("list users", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageError("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list users", err)
	}
	return list, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (coincidencia exacta).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// Create comprueba la unicidad del email y luego inserta, todo en la misma transacción.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.tx.Run(ctx, func(q Querier) error {
		var exists bool
		if err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, u.Email).Scan(&exists); err != nil {
			return storageError("check user email", err)
		}
		if exists {
			return domain.ErrConflict
		}

		query := `
			INSERT INTO users (name, email, password, role_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`
		err := q.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.RoleID).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return storageError("insert user", err)
		}
		return nil
	})
}

// Update persiste el registro completo del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.tx.Run(ctx, func(q Querier) error {
		query := `
			UPDATE users SET name = $2, email = $3, password = $4, role_id = $5
			WHERE id = $1
			RETURNING created_at`
		err := q.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.RoleID).Scan(&u.CreatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return domain.ErrNotFound
			case isUniqueViolation(err):
				return domain.ErrConflict
			}
			return storageError("update user", err)
		}
		return nil
	})
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.tx.Run(ctx, func(q Querier) error {
		return deleteByID(ctx, q, "users", id)
	})
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageError(op, err)
	}
	return u, nil
}

func scanUser(s rowScanner) (*entity.User, error) {
	var u entity.User
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
