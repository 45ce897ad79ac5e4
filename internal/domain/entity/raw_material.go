package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima del inventario de producción
// (principio activo, envase, etiqueta, insumo de empaque).
// CurrentStock es un acumulado mutable y nunca puede quedar negativo;
// toda modificación pasa por el libro de materiales (movimientos).
type RawMaterial struct {
	ID            string
	CategoryID    string
	Name          string
	Unit          string // mg, ml, unidad, etc.
	CurrentStock  decimal.Decimal
	MinStockLevel decimal.Decimal
	CostPerUnit   decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (m *RawMaterial) BelowMinimum() bool {
	return m.CurrentStock.LessThan(m.MinStockLevel)
}
