package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleRequest body para POST /articles y PUT /articles/{id}.
// Reemplazo completo: todos los campos son obligatorios también al actualizar.
type ArticleRequest struct {
	Name              *string          `json:"name" validate:"required,min=1,max=255"`
	Type              *string          `json:"type" validate:"required,max=255"`
	Description       *string          `json:"description" validate:"required,min=1"`
	Price             *decimal.Decimal `json:"price" validate:"required,gt=0,lt=100000000"` // NUMERIC(10,2)
	AvailableQuantity *int             `json:"available_quantity" validate:"required,gte=0"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"` // string JSON, p. ej. "12.5"
	AvailableQuantity int             `json:"available_quantity"`
	CreatedAt         time.Time       `json:"created_at"`
}
