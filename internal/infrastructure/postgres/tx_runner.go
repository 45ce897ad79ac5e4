package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// Ensure TxRunner implements the transactional ports of each flow.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ shipping.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewRawMaterialRepository(tx)
	movRepo := NewMaterialMovementRepository(tx)

	if err := fn(materialRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia una transacción con los repos del flujo de producción
// (arranque, cancelación y restauración de lotes).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewRawMaterialRepository(tx)
	movRepo := NewMaterialMovementRepository(tx)
	batchRepo := NewBatchRepository(tx)

	if err := fn(materialRepo, movRepo, batchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunShipping inicia una transacción con los repos del flujo de envíos
// (recálculo del estado agregado del lote, restauración per_box).
func (r *TxRunner) RunShipping(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	batchRepo repository.BatchRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewRawMaterialRepository(tx)
	movRepo := NewMaterialMovementRepository(tx)
	batchRepo := NewBatchRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)

	if err := fn(materialRepo, movRepo, batchRepo, shipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
