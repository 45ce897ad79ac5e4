package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea del carrito en el checkout.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	SaleType  string `json:"sale_type"` // individual | pack
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/checkout/orders.
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	ShipAddress   string             `json:"ship_address"`
	ShipCity      string             `json:"ship_city"`
	ShipState     string             `json:"ship_state"`
	ShipZip       string             `json:"ship_zip"`
	ShipCountry   string             `json:"ship_country,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemResponse una línea de la orden.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	SaleType  string          `json:"sale_type"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación de una orden. ClientSecret solo viene en la
// creación (el frontend confirma el pago con él).
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Status       string              `json:"status"`
	Currency     string              `json:"currency"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	ShippingCost decimal.Decimal     `json:"shipping_cost"`
	Total        decimal.Decimal     `json:"total"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	ClientSecret string              `json:"client_secret,omitempty"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// OrderListResponse listado paginado de órdenes (back-office).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
