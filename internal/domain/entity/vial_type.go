package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VialType representa un formato de envase producible (ej. vial 10ml).
// BottlesPerPack define cuántas unidades base componen un pack de venta.
type VialType struct {
	ID             string
	Name           string
	CapacityML     decimal.Decimal
	BottlesPerPack int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
