package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento sobre materias primas.
const (
	MovementTypeIN  = "IN"  // entrada (compra, restauración por cancelación)
	MovementTypeOUT = "OUT" // salida (consumo por producción)
)

// MaterialMovement registra cada ajuste del libro de materiales.
// Reference apunta al origen del ajuste (ej. ID del lote de producción).
type MaterialMovement struct {
	ID         string
	MaterialID string
	Type       string
	Quantity   decimal.Decimal // positivo entrada, negativo salida
	Reference  string
	Date       time.Time
	CreatedAt  time.Time
	CreatedBy  string
}
