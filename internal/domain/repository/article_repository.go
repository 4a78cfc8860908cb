package repository

import (
	"context"

	"github.com/jhoicas/gela-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// GetByID, Update y Delete devuelven domain.ErrNotFound si el id no existe.
type ArticleRepository interface {
	List(ctx context.Context) ([]*entity.Article, error)
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	// Create asigna ID y CreatedAt.
	Create(ctx context.Context, article *entity.Article) error
	// Update reemplaza todos los campos editables.
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
}
