package inventory

import (
	"context"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de materiales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
	) error) error
}
