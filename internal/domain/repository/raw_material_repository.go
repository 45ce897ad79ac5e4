package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para materias primas.
// Usado dentro de transacciones para garantizar consistencia del stock.
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
	UpdateStock(id string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.RawMaterial, error)
	ListBelowMinimum() ([]*entity.RawMaterial, error)
}

// MaterialCategoryRepository define el puerto para categorías de materias primas.
type MaterialCategoryRepository interface {
	Create(category *entity.MaterialCategory) error
	GetByID(id string) (*entity.MaterialCategory, error)
	Update(category *entity.MaterialCategory) error
	List() ([]*entity.MaterialCategory, error)
}

// MaterialMovementRepository define el puerto para el histórico de movimientos.
type MaterialMovementRepository interface {
	Create(movement *entity.MaterialMovement) error
	ListByMaterial(materialID string, limit, offset int) ([]*entity.MaterialMovement, error)
	ListByReference(reference string) ([]*entity.MaterialMovement, error)
}
