package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	VialTypeID  string          `json:"vial_type_id"`
	Price       decimal.Decimal `json:"price"`
	PackPrice   decimal.Decimal `json:"pack_price,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	VialTypeID  *string          `json:"vial_type_id,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PackPrice   *decimal.Decimal `json:"pack_price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	VialTypeID  string          `json:"vial_type_id"`
	Price       decimal.Decimal `json:"price"`
	PackPrice   decimal.Decimal `json:"pack_price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateVialTypeRequest body para POST /api/vial-types.
type CreateVialTypeRequest struct {
	Name           string          `json:"name"`
	CapacityML     decimal.Decimal `json:"capacity_ml"`
	BottlesPerPack int             `json:"bottles_per_pack"`
}

// VialTypeResponse representación de un formato de envase.
type VialTypeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CapacityML     decimal.Decimal `json:"capacity_ml"`
	BottlesPerPack int             `json:"bottles_per_pack"`
	Active         bool            `json:"active"`
}

// BOMLineRequest una línea de BOM al reemplazar la receta de un producto
// o formato de envase.
type BOMLineRequest struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	ApplicationType string          `json:"application_type,omitempty"` // solo BOM de empaque
}

// ReplaceBOMRequest body para PUT /api/vial-types/:id/materials y
// PUT /api/products/:id/materials.
type ReplaceBOMRequest struct {
	Lines []BOMLineRequest `json:"lines"`
}

// BOMLineResponse una línea de BOM en respuestas.
type BOMLineResponse struct {
	MaterialID      string          `json:"material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	ApplicationType string          `json:"application_type,omitempty"`
}
