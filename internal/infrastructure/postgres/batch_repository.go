package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de lotes de producción sobre PostgreSQL
// (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, batch_number, vial_type_id, product_id, quantity, sale_type, pack_quantity, status, started_at, completed_at, shipped_units, notes, created_at, updated_at`

// Create persiste un lote. ErrDuplicate si el número de lote ya existe.
func (r *BatchRepo) Create(b *entity.ProductionBatch) error {
	query := `
		INSERT INTO production_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.BatchNumber, b.VialTypeID, b.ProductID, b.Quantity, b.SaleType,
		b.PackQuantity, b.Status, b.StartedAt, b.CompletedAt, b.ShippedUnits,
		b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1`
	return scanBatch(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE) dentro de
// la transacción actual. Serializa arranques y recálculos concurrentes.
func (r *BatchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1 FOR UPDATE`
	return scanBatch(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste el lote completo en un solo statement.
func (r *BatchRepo) Update(b *entity.ProductionBatch) error {
	query := `
		UPDATE production_batches
		SET batch_number = $2, vial_type_id = $3, product_id = $4, quantity = $5,
		    sale_type = $6, pack_quantity = $7, status = $8, started_at = $9,
		    completed_at = $10, shipped_units = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		b.ID, b.BatchNumber, b.VialTypeID, b.ProductID, b.Quantity, b.SaleType,
		b.PackQuantity, b.Status, b.StartedAt, b.CompletedAt, b.ShippedUnits,
		b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes, opcionalmente filtrados por estado, más reciente primero.
func (r *BatchRepo) List(status string, limit, offset int) ([]*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		var b entity.ProductionBatch
		if err := rows.Scan(&b.ID, &b.BatchNumber, &b.VialTypeID, &b.ProductID,
			&b.Quantity, &b.SaleType, &b.PackQuantity, &b.Status, &b.StartedAt,
			&b.CompletedAt, &b.ShippedUnits, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	err := row.Scan(&b.ID, &b.BatchNumber, &b.VialTypeID, &b.ProductID,
		&b.Quantity, &b.SaleType, &b.PackQuantity, &b.Status, &b.StartedAt,
		&b.CompletedAt, &b.ShippedUnits, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}
