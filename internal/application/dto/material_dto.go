package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	InitialStock  decimal.Decimal `json:"initial_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id.
// El stock no se edita aquí; se ajusta vía movimientos.
type UpdateMaterialRequest struct {
	CategoryID    *string          `json:"category_id,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
	CostPerUnit   *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// MaterialResponse representación de una materia prima.
type MaterialResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	Active        bool            `json:"active"`
	BelowMinimum  bool            `json:"below_minimum"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MaterialListResponse listado paginado de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AdjustStockRequest body para POST /api/materials/:id/adjust.
type AdjustStockRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Direction string          `json:"direction"` // add | deduct
	Reference string          `json:"reference,omitempty"`
}

// AdjustStockResponse stock resultante tras el ajuste.
type AdjustStockResponse struct {
	MaterialID string          `json:"material_id"`
	NewStock   decimal.Decimal `json:"new_stock"`
}

// LowStockItemDTO una materia prima por debajo de su mínimo con la
// cantidad sugerida de reposición.
type LowStockItemDTO struct {
	MaterialID        string          `json:"material_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStockLevel     decimal.Decimal `json:"min_stock_level"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // (MinStockLevel * 1.5) - CurrentStock
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`      // SuggestedOrderQty * CostPerUnit
}

// MovementResponse un movimiento del libro de materiales.
type MovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reference  string          `json:"reference,omitempty"`
	Date       time.Time       `json:"date"`
	CreatedBy  string          `json:"created_by,omitempty"`
}

// CreateCategoryRequest body para POST /api/material-categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
