package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// Direcciones de ajuste del libro de materiales.
const (
	DirectionAdd    = "add"
	DirectionDeduct = "deduct"
)

// LedgerUseCase es el libro de materiales: lectura y ajuste transaccional del
// stock de materias primas con bloqueo de fila (SELECT FOR UPDATE).
// Un deduct que dejaría el stock negativo falla con ErrInsufficientStock sin
// escribir nada; todo ajuste exitoso deja un MaterialMovement.
type LedgerUseCase struct {
	txRunner     TxRunner
	materialRepo repository.RawMaterialRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, materialRepo repository.RawMaterialRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, materialRepo: materialRepo}
}

// AdjustStockInput entrada para un ajuste manual del libro.
type AdjustStockInput struct {
	MaterialID string
	Quantity   decimal.Decimal
	Direction  string // add | deduct
	Reference  string
	UserID     string
}

// GetStock devuelve el stock actual de una materia prima.
func (uc *LedgerUseCase) GetStock(ctx context.Context, materialID string) (decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	if material == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return material.CurrentStock, nil
}

// AdjustStock aplica un ajuste dentro de una transacción propia y devuelve el
// stock resultante. Commit si todo ok, Rollback si algo falla.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (decimal.Decimal, error) {
	if input.MaterialID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if input.Direction != DirectionAdd && input.Direction != DirectionDeduct {
		return decimal.Zero, domain.ErrInvalidInput
	}

	now := time.Now()
	var newStock decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
	) error {
		var err error
		newStock, err = uc.AdjustInTx(materialRepo, movRepo, input.MaterialID, input.Quantity, input.Direction, input.Reference, input.UserID, now)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newStock, nil
}

// AdjustInTx aplica un ajuste usando los repositorios proporcionados (misma
// transacción del caller). Lo usan el arranque de producción y la restauración
// de materiales para que el descuento completo sea todo-o-nada.
func (uc *LedgerUseCase) AdjustInTx(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	materialID string,
	quantity decimal.Decimal,
	direction string,
	reference, userID string,
	now time.Time,
) (decimal.Decimal, error) {
	// Bloquea la fila en raw_materials (SELECT FOR UPDATE) para evitar
	// condiciones de carrera entre ajustes concurrentes
	material, err := materialRepo.GetForUpdate(materialID)
	if err != nil {
		return decimal.Zero, err
	}
	if material == nil {
		return decimal.Zero, domain.ErrNotFound
	}

	var target decimal.Decimal
	var movType string
	var movQty decimal.Decimal
	switch direction {
	case DirectionAdd:
		target = material.CurrentStock.Add(quantity)
		movType = entity.MovementTypeIN
		movQty = quantity
	case DirectionDeduct:
		target = material.CurrentStock.Sub(quantity)
		if target.IsNegative() {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		movType = entity.MovementTypeOUT
		movQty = quantity.Neg()
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}

	if err := materialRepo.UpdateStock(materialID, target); err != nil {
		return decimal.Zero, err
	}
	mov := &entity.MaterialMovement{
		ID:         uuid.New().String(),
		MaterialID: materialID,
		Type:       movType,
		Quantity:   movQty,
		Reference:  reference,
		Date:       now,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return target, nil
}
