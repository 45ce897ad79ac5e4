package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.MaterialMovementRepository = (*MaterialMovementRepo)(nil)

// MaterialMovementRepo implementación del histórico del libro de materiales
// sobre PostgreSQL (usable con pool o tx).
type MaterialMovementRepo struct {
	q Querier
}

// NewMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialMovementRepository(q Querier) *MaterialMovementRepo {
	return &MaterialMovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MaterialMovementRepo) Create(m *entity.MaterialMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_movements (id, material_id, type, quantity, reference, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.MaterialID, m.Type, m.Quantity, m.Reference, m.Date, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create material movement: %w", err)
	}
	return nil
}

// ListByMaterial lista el histórico de una materia prima, más reciente primero.
func (r *MaterialMovementRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	query := `
		SELECT id, material_id, type, quantity, reference, date, created_at, created_by
		FROM material_movements WHERE material_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by material: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReference lista los movimientos originados por una referencia
// (ej. el ID del lote de producción que los descontó).
func (r *MaterialMovementRepo) ListByReference(reference string) ([]*entity.MaterialMovement, error) {
	query := `
		SELECT id, material_id, type, quantity, reference, date, created_at, created_by
		FROM material_movements WHERE reference = $1
		ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, reference)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.MaterialMovement, error) {
	var list []*entity.MaterialMovement
	for rows.Next() {
		var m entity.MaterialMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.Reference,
			&m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
