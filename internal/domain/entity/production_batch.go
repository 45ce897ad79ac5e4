package entity

import "time"

// Estados de un lote de producción.
const (
	BatchStatusPending    = "pending"
	BatchStatusInProgress = "in_progress"
	BatchStatusCompleted  = "completed"
	BatchStatusCancelled  = "cancelled"
)

// Modalidades de venta de un lote.
const (
	SaleTypeIndividual = "individual"
	SaleTypePack       = "pack"
)

// ProductionBatch representa una corrida de producción de un formato de envase.
// Quantity siempre se almacena en unidades base (botellas), incluso cuando
// SaleType es pack; PackQuantity solo tiene sentido con SaleType = pack.
// ShippedUnits se recalcula desde las cajas de sus envíos, no se mantiene incremental.
type ProductionBatch struct {
	ID           string
	BatchNumber  string
	VialTypeID   string
	ProductID    string
	Quantity     int // unidades base (botellas)
	SaleType     string
	PackQuantity int // packs; 0 si SaleType = individual
	Status       string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ShippedUnits int
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal indica si el lote está en un estado final (completed o cancelled).
func (b *ProductionBatch) Terminal() bool {
	return b.Status == BatchStatusCompleted || b.Status == BatchStatusCancelled
}
