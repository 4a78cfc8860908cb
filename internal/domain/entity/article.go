package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article artículo del catálogo. No tiene relaciones con otras entidades.
type Article struct {
	ID                int64
	Name              string
	Type              string
	Description       string
	Price             decimal.Decimal // NUMERIC(10,2), siempre > 0
	AvailableQuantity int
	CreatedAt         time.Time
}
