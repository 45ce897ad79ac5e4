package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible en la tienda.
// VialTypeID asocia el producto a su formato de envase (BOM de empaque).
// Los requerimientos de principio activo viven en ProductMaterial.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	VialTypeID  string
	Price       decimal.Decimal // precio por unidad base (botella)
	PackPrice   decimal.Decimal // precio por pack; cero = no se vende por pack
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
