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

var _ repository.MaterialCategoryRepository = (*MaterialCategoryRepo)(nil)

// MaterialCategoryRepo implementación de categorías de materias primas.
type MaterialCategoryRepo struct {
	q Querier
}

// NewMaterialCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialCategoryRepository(q Querier) *MaterialCategoryRepo {
	return &MaterialCategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *MaterialCategoryRepo) Create(c *entity.MaterialCategory) error {
	query := `
		INSERT INTO material_categories (id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. nil si no existe.
func (r *MaterialCategoryRepo) GetByID(id string) (*entity.MaterialCategory, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM material_categories WHERE id = $1`
	var c entity.MaterialCategory
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material category: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre y flag activo.
func (r *MaterialCategoryRepo) Update(c *entity.MaterialCategory) error {
	query := `UPDATE material_categories SET name = $2, active = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Active, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update material category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las categorías.
func (r *MaterialCategoryRepo) List() ([]*entity.MaterialCategory, error) {
	query := `SELECT id, name, active, created_at, updated_at FROM material_categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list material categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialCategory
	for rows.Next() {
		var c entity.MaterialCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
