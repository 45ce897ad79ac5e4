package shipping

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de envíos atados a esa tx. El recálculo del estado
// agregado del lote se persiste en un solo update atómico.
type TxRunner interface {
	RunShipping(ctx context.Context, fn func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
		shipmentRepo repository.ShipmentRepository,
	) error) error
}

// MaterialLedger es el puerto hacia el libro de materiales dentro de una
// transacción del caller (restauración per_box a nivel de envío).
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

// RateQuoter cotiza tarifas de envío con el transportista externo.
type RateQuoter interface {
	Quote(ctx context.Context, weightLb decimal.Decimal, destZip string) ([]dto.RateQuoteDTO, error)
}

// PackingSlipGenerator genera el PDF de la guía de empaque de un envío.
type PackingSlipGenerator interface {
	Generate(shipment *entity.Shipment, batch *entity.ProductionBatch, boxes []*entity.ShipmentBox) ([]byte, error)
}
