package repository

import (
	"context"

	"github.com/jhoicas/gela-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Create exige PasswordHash ya calculado. Verifica unicidad del email antes de insertar:
	// domain.ErrConflict sin escribir nada si ya existe.
	Create(ctx context.Context, user *entity.User) error
	// Update persiste el registro completo (el merge parcial lo hace el caso de uso).
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}
