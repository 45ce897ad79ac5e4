package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	BatchID     string `json:"batch_id"`
	Carrier     string `json:"carrier,omitempty"`
	DestName    string `json:"dest_name"`
	DestAddress string `json:"dest_address"`
	DestCity    string `json:"dest_city"`
	DestState   string `json:"dest_state"`
	DestZip     string `json:"dest_zip"`
	DestCountry string `json:"dest_country,omitempty"`
}

// UpdateShipmentRequest body para PUT /api/shipments/:id (estado manual y tracking).
type UpdateShipmentRequest struct {
	Status         *string `json:"status,omitempty"` // preparing | pending | shipped | delivered
	Carrier        *string `json:"carrier,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// ShipmentResponse representación de un envío.
type ShipmentResponse struct {
	ID             string     `json:"id"`
	BatchID        string     `json:"batch_id"`
	Status         string     `json:"status"`
	Carrier        string     `json:"carrier,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	DestName       string     `json:"dest_name"`
	DestCity       string     `json:"dest_city"`
	DestState      string     `json:"dest_state"`
	DestZip        string     `json:"dest_zip"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AddBoxRequest body para POST /api/shipments/:id/boxes.
type AddBoxRequest struct {
	BoxNumber     int             `json:"box_number"`
	PacksPerBox   int             `json:"packs_per_box,omitempty"`
	BottlesPerBox int             `json:"bottles_per_box,omitempty"`
	WeightLb      decimal.Decimal `json:"weight_lb,omitempty"`
	LengthIn      decimal.Decimal `json:"length_in,omitempty"`
	WidthIn       decimal.Decimal `json:"width_in,omitempty"`
	HeightIn      decimal.Decimal `json:"height_in,omitempty"`
}

// BoxResponse representación de una caja.
type BoxResponse struct {
	ID            string          `json:"id"`
	ShipmentID    string          `json:"shipment_id"`
	BoxNumber     int             `json:"box_number"`
	PacksPerBox   int             `json:"packs_per_box,omitempty"`
	BottlesPerBox int             `json:"bottles_per_box,omitempty"`
	WeightLb      decimal.Decimal `json:"weight_lb,omitempty"`
}

// RateQuoteRequest query para GET /api/shipments/rates.
type RateQuoteRequest struct {
	WeightLb decimal.Decimal `query:"weight_lb"`
	DestZip  string          `query:"dest_zip"`
}

// RateQuoteDTO una tarifa cotizada por el transportista.
type RateQuoteDTO struct {
	Carrier      string          `json:"carrier"`
	Service      string          `json:"service"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	DeliveryDays int             `json:"delivery_days,omitempty"`
}

// TrackingEventRequest body del webhook del transportista.
// Status llega en el vocabulario del carrier y se mapea al interno
// {shipped, delivered, exception}.
type TrackingEventRequest struct {
	TrackingNumber string    `json:"tracking_number"`
	Status         string    `json:"status"`
	OccurredAt     time.Time `json:"occurred_at"`
	Description    string    `json:"description,omitempty"`
}
