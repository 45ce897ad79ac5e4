package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de la tienda.
const (
	OrderStatusPending   = "pending"   // creada, pago no confirmado
	OrderStatusPaid      = "paid"      // webhook de pago confirmado
	OrderStatusFulfilled = "fulfilled" // despachada
	OrderStatusCancelled = "cancelled"
)

// Order representa una compra de la tienda. El pago se confirma de forma
// asíncrona vía webhook del proveedor (PaymentIntentID enlaza ambos mundos).
type Order struct {
	ID              string
	Number          string
	CustomerName    string
	CustomerEmail   string
	ShipAddress     string
	ShipCity        string
	ShipState       string
	ShipZip         string
	ShipCountry     string
	Status          string
	Currency        string // ISO 4217, minúsculas (usd)
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	PaymentIntentID string
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem es una línea de la orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	SaleType  string // individual | pack
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
