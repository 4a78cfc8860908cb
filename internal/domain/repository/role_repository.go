package repository

import (
	"context"

	"github.com/jhoicas/gela-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.Role, error)
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	// Create devuelve domain.ErrConflict si el rol ya existe.
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int64) error
}
