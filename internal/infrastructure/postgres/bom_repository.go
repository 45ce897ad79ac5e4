package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.VialTypeMaterialRepository = (*VialTypeMaterialRepo)(nil)
var _ repository.ProductMaterialRepository = (*ProductMaterialRepo)(nil)

// VialTypeMaterialRepo implementación del BOM de empaque (tabla vial_type_materials).
// Tabla independiente de product_materials; nunca se unen en una query.
type VialTypeMaterialRepo struct {
	q Querier
}

// NewVialTypeMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVialTypeMaterialRepository(q Querier) *VialTypeMaterialRepo {
	return &VialTypeMaterialRepo{q: q}
}

// ListByVialType lista las líneas del BOM de empaque de un formato.
func (r *VialTypeMaterialRepo) ListByVialType(vialTypeID string) ([]entity.VialTypeMaterial, error) {
	query := `
		SELECT vial_type_id, raw_material_id, quantity_per_unit, application_type
		FROM vial_type_materials WHERE vial_type_id = $1
		ORDER BY raw_material_id`
	rows, err := r.q.Query(context.Background(), query, vialTypeID)
	if err != nil {
		return nil, fmt.Errorf("list vial type materials: %w", err)
	}
	defer rows.Close()
	var list []entity.VialTypeMaterial
	for rows.Next() {
		var l entity.VialTypeMaterial
		if err := rows.Scan(&l.VialTypeID, &l.RawMaterialID, &l.QuantityPerUnit, &l.ApplicationType); err != nil {
			return nil, fmt.Errorf("scan vial type material: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Replace reemplaza el BOM completo del formato (delete + insert).
func (r *VialTypeMaterialRepo) Replace(vialTypeID string, lines []entity.VialTypeMaterial) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM vial_type_materials WHERE vial_type_id = $1`, vialTypeID); err != nil {
		return fmt.Errorf("delete vial type materials: %w", err)
	}
	query := `
		INSERT INTO vial_type_materials (vial_type_id, raw_material_id, quantity_per_unit, application_type)
		VALUES ($1, $2, $3, $4)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, vialTypeID, l.RawMaterialID, l.QuantityPerUnit, l.ApplicationType); err != nil {
			return fmt.Errorf("insert vial type material: %w", err)
		}
	}
	return nil
}

// ProductMaterialRepo implementación del BOM de principios activos
// (tabla product_materials).
type ProductMaterialRepo struct {
	q Querier
}

// NewProductMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductMaterialRepository(q Querier) *ProductMaterialRepo {
	return &ProductMaterialRepo{q: q}
}

// ListByProduct lista las líneas del BOM de un producto.
func (r *ProductMaterialRepo) ListByProduct(productID string) ([]entity.ProductMaterial, error) {
	query := `
		SELECT product_id, material_id, quantity_per_unit
		FROM product_materials WHERE product_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product materials: %w", err)
	}
	defer rows.Close()
	return scanProductMaterials(rows)
}

// Replace reemplaza el BOM completo del producto (delete + insert).
func (r *ProductMaterialRepo) Replace(productID string, lines []entity.ProductMaterial) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_materials WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product materials: %w", err)
	}
	query := `
		INSERT INTO product_materials (product_id, material_id, quantity_per_unit)
		VALUES ($1, $2, $3)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, productID, l.MaterialID, l.QuantityPerUnit); err != nil {
			return fmt.Errorf("insert product material: %w", err)
		}
	}
	return nil
}

func scanProductMaterials(rows pgx.Rows) ([]entity.ProductMaterial, error) {
	var list []entity.ProductMaterial
	for rows.Next() {
		var l entity.ProductMaterial
		if err := rows.Scan(&l.ProductID, &l.MaterialID, &l.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("scan product material: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
