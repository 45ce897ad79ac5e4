package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = `id, category_id, name, unit, current_stock, min_stock_level, cost_per_unit, active, created_at, updated_at`

// Create persiste una materia prima.
func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (` + rawMaterialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CategoryID, m.Name, m.Unit, m.CurrentStock, m.MinStockLevel,
		m.CostPerUnit, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID. nil si no existe.
func (r *RawMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE)
// dentro de la transacción actual.
func (r *RawMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos editables (el stock se toca solo con UpdateStock).
func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET category_id = $2, name = $3, unit = $4, min_stock_level = $5,
		    cost_per_unit = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CategoryID, m.Name, m.Unit, m.MinStockLevel, m.CostPerUnit, m.Active, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// UpdateStock fija el stock acumulado (el caller ya validó no-negatividad con la fila bloqueda).
func (r *RawMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE raw_materials SET current_stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista materias primas paginadas.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListBelowMinimum lista materias primas activas con stock bajo el mínimo configurado.
func (r *RawMaterialRepo) ListBelowMinimum() ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM raw_materials
		WHERE active AND current_stock < min_stock_level
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *RawMaterialRepo) scanOne(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Unit, &m.CurrentStock,
		&m.MinStockLevel, &m.CostPerUnit, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return &m, nil
}

func (r *RawMaterialRepo) scanAll(rows pgx.Rows) ([]*entity.RawMaterial, error) {
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Unit, &m.CurrentStock,
			&m.MinStockLevel, &m.CostPerUnit, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
