package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de producción atados a esa tx. El descuento de
// materiales y el cambio de estado del lote se confirman o revierten juntos.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// MaterialLedger es el puerto hacia el libro de materiales dentro de una
// transacción del caller (implementado por inventory.LedgerUseCase).
type MaterialLedger interface {
	AdjustInTx(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		materialID string,
		quantity decimal.Decimal,
		direction string,
		reference, userID string,
		now time.Time,
	) (decimal.Decimal, error)
}
