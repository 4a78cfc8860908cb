package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gela-api/internal/application/dto"
	"github.com/jhoicas/gela-api/internal/application/validation"
	"github.com/jhoicas/gela-api/internal/domain/entity"
	"github.com/jhoicas/gela-api/internal/domain/repository"
)

// pricePlaces escala de la columna price (NUMERIC(10,2)).
const pricePlaces = 2

// maxPrice primer valor que ya no cabe en NUMERIC(10,2).
var maxPrice = decimal.NewFromInt(100000000)

// ArticleUseCase casos de uso CRUD para artículos.
type ArticleUseCase struct {
	repo repository.ArticleRepository
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository) *ArticleUseCase {
	return &ArticleUseCase{repo: repo}
}

// List devuelve todos los artículos.
func (uc *ArticleUseCase) List(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toArticleResponse(a))
	}
	return out, nil
}

// GetByID obtiene un artículo; domain.ErrNotFound si no existe.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id int64) (*dto.ArticleResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toArticleResponse(a), nil
}

// Create valida y persiste un artículo nuevo.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	if err := validateArticle(in); err != nil {
		return nil, err
	}
	a := articleFromRequest(in)
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toArticleResponse(a), nil
}

// Update reemplaza todos los campos del artículo. Si la validación falla no se toca el almacén.
func (uc *ArticleUseCase) Update(ctx context.Context, id int64, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	if err := validateArticle(in); err != nil {
		return nil, err
	}
	a := articleFromRequest(in)
	a.ID = id
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toArticleResponse(a), nil
}

// Delete elimina el artículo.
func (uc *ArticleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// validateArticle aplica las reglas del DTO y vuelve a comprobar el precio ya redondeado,
// que es el valor que se persiste.
func validateArticle(in dto.ArticleRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	price := in.Price.Round(pricePlaces)
	if !price.IsPositive() {
		return validation.FieldFailed("price", "gt")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return validation.FieldFailed("price", "lt")
	}
	return nil
}

// articleFromRequest asume un request ya validado (sin punteros nulos).
func articleFromRequest(in dto.ArticleRequest) *entity.Article {
	return &entity.Article{
		Name:              *in.Name,
		Type:              *in.Type,
		Description:       *in.Description,
		Price:             in.Price.Round(pricePlaces),
		AvailableQuantity: *in.AvailableQuantity,
	}
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:                a.ID,
		Name:              a.Name,
		Type:              a.Type,
		Description:       a.Description,
		Price:             a.Price,
		AvailableQuantity: a.AvailableQuantity,
		CreatedAt:         a.CreatedAt,
	}
}
