package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// VialTypeMaterialRepository define el puerto para el BOM de empaque
// (materiales por formato de envase). Tabla independiente del BOM de
// principios activos; nunca se unen antes de descontar.
type VialTypeMaterialRepository interface {
	ListByVialType(vialTypeID string) ([]entity.VialTypeMaterial, error)
	Replace(vialTypeID string, lines []entity.VialTypeMaterial) error
}

// ProductMaterialRepository define el puerto para el BOM de principios
// activos (materiales por producto).
type ProductMaterialRepository interface {
	ListByProduct(productID string) ([]entity.ProductMaterial, error)
	Replace(productID string, lines []entity.ProductMaterial) error
}
