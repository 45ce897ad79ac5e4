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

var _ repository.VialTypeRepository = (*VialTypeRepo)(nil)

// VialTypeRepo implementación de formatos de envase sobre PostgreSQL.
type VialTypeRepo struct {
	q Querier
}

// NewVialTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVialTypeRepository(q Querier) *VialTypeRepo {
	return &VialTypeRepo{q: q}
}

// Create persiste un formato de envase.
func (r *VialTypeRepo) Create(vt *entity.VialType) error {
	query := `
		INSERT INTO vial_types (id, name, capacity_ml, bottles_per_pack, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		vt.ID, vt.Name, vt.CapacityML, vt.BottlesPerPack, vt.Active, vt.CreatedAt, vt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create vial type: %w", err)
	}
	return nil
}

// GetByID obtiene un formato por ID. nil si no existe.
func (r *VialTypeRepo) GetByID(id string) (*entity.VialType, error) {
	query := `SELECT id, name, capacity_ml, bottles_per_pack, active, created_at, updated_at FROM vial_types WHERE id = $1`
	var vt entity.VialType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&vt.ID, &vt.Name, &vt.CapacityML, &vt.BottlesPerPack, &vt.Active, &vt.CreatedAt, &vt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vial type: %w", err)
	}
	return &vt, nil
}

// Update actualiza un formato.
func (r *VialTypeRepo) Update(vt *entity.VialType) error {
	query := `
		UPDATE vial_types
		SET name = $2, capacity_ml = $3, bottles_per_pack = $4, active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		vt.ID, vt.Name, vt.CapacityML, vt.BottlesPerPack, vt.Active, vt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vial type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los formatos.
func (r *VialTypeRepo) List() ([]*entity.VialType, error) {
	query := `SELECT id, name, capacity_ml, bottles_per_pack, active, created_at, updated_at FROM vial_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vial types: %w", err)
	}
	defer rows.Close()
	var list []*entity.VialType
	for rows.Next() {
		var vt entity.VialType
		if err := rows.Scan(&vt.ID, &vt.Name, &vt.CapacityML, &vt.BottlesPerPack,
			&vt.Active, &vt.CreatedAt, &vt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vial type: %w", err)
		}
		list = append(list, &vt)
	}
	return list, rows.Err()
}
