package shipping

import (
	"context"
	"time"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	domainprod "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// RecalcBatchStatus recalcula el estado agregado y las unidades despachadas
// de un lote a partir de sus envíos y cajas, y persiste todo en un solo
// update. Idempotente: sin cambios intermedios en los envíos, una segunda
// llamada es un no-op. Los errores se devuelven al caller (nunca se tragan).
func (uc *ShipmentUseCase) RecalcBatchStatus(ctx context.Context, batchID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunShipping(ctx, func(
		_ repository.RawMaterialRepository,
		_ repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		// Bloquea el lote: dos recálculos concurrentes serializan aquí
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}

		shipments, err := shipmentRepo.ListByBatch(batchID)
		if err != nil {
			return err
		}
		boxesByShipment := make(map[string][]*entity.ShipmentBox, len(shipments))
		for _, s := range shipments {
			boxes, err := shipmentRepo.ListBoxes(s.ID)
			if err != nil {
				return err
			}
			boxesByShipment[s.ID] = boxes
		}

		// La modalidad de venta sale del propio lote cargado, nunca de
		// una variable ambiente
		res := domainprod.DeriveBatchStatus(batch, shipments, boxesByShipment, now)
		if !res.Changed {
			return nil
		}

		batch.Status = res.Status
		batch.ShippedUnits = res.ShippedUnits
		batch.StartedAt = res.StartedAt
		batch.CompletedAt = res.CompletedAt
		batch.UpdatedAt = now
		return batchRepo.Update(batch)
	})
}
