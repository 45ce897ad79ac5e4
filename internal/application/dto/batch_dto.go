package dto

import "time"

// CreateBatchRequest body para POST /api/batches.
// Quantity se interpreta según SaleType: botellas con individual, packs con
// pack (se normaliza a unidades base al persistir).
type CreateBatchRequest struct {
	BatchNumber string `json:"batch_number"`
	VialTypeID  string `json:"vial_type_id"`
	ProductID   string `json:"product_id"`
	SaleType    string `json:"sale_type"` // individual | pack
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateBatchRequest body para PUT /api/batches/:id (solo lotes no terminales).
type UpdateBatchRequest struct {
	BatchNumber *string `json:"batch_number,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BatchResponse representación de un lote de producción.
type BatchResponse struct {
	ID           string     `json:"id"`
	BatchNumber  string     `json:"batch_number"`
	VialTypeID   string     `json:"vial_type_id"`
	ProductID    string     `json:"product_id,omitempty"`
	Quantity     int        `json:"quantity"` // unidades base (botellas)
	SaleType     string     `json:"sale_type"`
	PackQuantity int        `json:"pack_quantity,omitempty"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ShippedUnits int        `json:"shipped_units"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
