package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un envío.
const (
	ShipmentStatusPreparing = "preparing"
	ShipmentStatusPending   = "pending"
	ShipmentStatusShipped   = "shipped"
	ShipmentStatusDelivered = "delivered"
)

// Shipment representa un despacho de cajas contra la producción de un lote.
// Un lote puede tener varios envíos; el estado agregado del lote se deriva
// de los estados de sus envíos.
type Shipment struct {
	ID             string
	BatchID        string
	Status         string
	Carrier        string
	TrackingNumber string
	DestName       string
	DestAddress    string
	DestCity       string
	DestState      string
	DestZip        string
	DestCountry    string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShipmentBox es una unidad física de empaque dentro de un envío.
// PacksPerBox o BottlesPerBox según la modalidad de venta del lote.
type ShipmentBox struct {
	ID            string
	ShipmentID    string
	BoxNumber     int
	PacksPerBox   int
	BottlesPerBox int
	WeightLb      decimal.Decimal
	LengthIn      decimal.Decimal
	WidthIn       decimal.Decimal
	HeightIn      decimal.Decimal
	CreatedAt     time.Time
}
