package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// BatchRepository define el puerto de persistencia para lotes de producción.
type BatchRepository interface {
	Create(batch *entity.ProductionBatch) error
	GetByID(id string) (*entity.ProductionBatch, error)
	// GetForUpdate bloquea la fila del lote dentro de una tx (cambios de estado).
	GetForUpdate(id string) (*entity.ProductionBatch, error)
	Update(batch *entity.ProductionBatch) error
	List(status string, limit, offset int) ([]*entity.ProductionBatch, error)
}
