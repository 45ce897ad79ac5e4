package production

import (
	"context"
	"time"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	domainprod "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// StartProductionUseCase ejecuta las transiciones del ciclo de vida de un lote
// que tocan el libro de materiales. Descuento y cambio de estado corren en una
// sola transacción: cualquier material insuficiente revierte todo (ningún
// descuento parcial queda aplicado).
type StartProductionUseCase struct {
	txRunner TxRunner
	ledger   MaterialLedger
	bomRepo  repository.VialTypeMaterialRepository
}

// NewStartProductionUseCase construye el caso de uso.
func NewStartProductionUseCase(txRunner TxRunner, ledger MaterialLedger, bomRepo repository.VialTypeMaterialRepository) *StartProductionUseCase {
	return &StartProductionUseCase{txRunner: txRunner, ledger: ledger, bomRepo: bomRepo}
}

// StartProduction arranca un lote pending: resuelve el BOM de empaque del
// formato, descuenta cada requerimiento (fila bloqueada) y deja el lote en
// in_progress con StartedAt. Las líneas per_box se resuelven en cero porque
// aún no existen cajas.
func (uc *StartProductionUseCase) StartProduction(ctx context.Context, batchID, userID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.RunProduction(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
	) error {
		// Bloquea el lote para que dos arranques concurrentes no descuenten doble
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Status != entity.BatchStatusPending {
			return domain.ErrInvalidTransition
		}

		bomLines, err := uc.bomRepo.ListByVialType(batch.VialTypeID)
		if err != nil {
			return err
		}
		reqs := domainprod.RequirementsFor(bomLines, batch, 0)

		// Descuento material por material; el primero insuficiente revierte
		// la transacción completa (sin descuentos parciales)
		for _, req := range reqs {
			if _, err := uc.ledger.AdjustInTx(materialRepo, movRepo, req.MaterialID, req.Quantity, inventory.DirectionDeduct, batch.ID, userID, now); err != nil {
				return err
			}
		}

		batch.Status = entity.BatchStatusInProgress
		batch.StartedAt = &now
		batch.UpdatedAt = now
		return batchRepo.Update(batch)
	})
}

// CancelBatch cancela un lote desde pending o in_progress. Si estaba
// in_progress, restaura los materiales descontados en la misma transacción.
func (uc *StartProductionUseCase) CancelBatch(ctx context.Context, batchID, userID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunProduction(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Terminal() {
			return domain.ErrInvalidTransition
		}

		if batch.Status == entity.BatchStatusInProgress {
			if err := uc.restoreInTx(materialRepo, movRepo, batch, userID, now); err != nil {
				return err
			}
		}

		batch.Status = entity.BatchStatusCancelled
		batch.UpdatedAt = now
		return batchRepo.Update(batch)
	})
}

// RestoreMaterials devuelve al libro los materiales de un lote (inverso del
// arranque): re-resuelve el BOM del formato y suma cada requerimiento.
func (uc *StartProductionUseCase) RestoreMaterials(ctx context.Context, batchID, userID string) error {
	if batchID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunProduction(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
	) error {
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		return uc.restoreInTx(materialRepo, movRepo, batch, userID, now)
	})
}

func (uc *StartProductionUseCase) restoreInTx(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	batch *entity.ProductionBatch,
	userID string,
	now time.Time,
) error {
	bomLines, err := uc.bomRepo.ListByVialType(batch.VialTypeID)
	if err != nil {
		return err
	}
	reqs := domainprod.RequirementsFor(bomLines, batch, 0)
	for _, req := range reqs {
		if _, err := uc.ledger.AdjustInTx(materialRepo, movRepo, req.MaterialID, req.Quantity, inventory.DirectionAdd, batch.ID, userID, now); err != nil {
			return err
		}
	}
	return nil
}
