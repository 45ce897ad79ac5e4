package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para envíos y sus cajas.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	GetByTrackingNumber(trackingNumber string) (*entity.Shipment, error)
	Update(shipment *entity.Shipment) error
	ListByBatch(batchID string) ([]*entity.Shipment, error)

	CreateBox(box *entity.ShipmentBox) error
	ListBoxes(shipmentID string) ([]*entity.ShipmentBox, error)
	DeleteBox(id string) error
}
