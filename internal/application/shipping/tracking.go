package shipping

import (
	"context"
	"time"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
)

// Vocabulario interno de eventos de tracking.
const (
	TrackingShipped   = "shipped"
	TrackingDelivered = "delivered"
	TrackingException = "exception"
)

// mapCarrierStatus traduce el vocabulario del transportista al interno
// {shipped, delivered, exception}. Los estados desconocidos quedan como
// exception para revisión manual.
func mapCarrierStatus(carrierStatus string) string {
	switch carrierStatus {
	case "in_transit", "picked_up", "shipped", "out_for_delivery":
		return TrackingShipped
	case "delivered":
		return TrackingDelivered
	default:
		return TrackingException
	}
}

// ApplyTrackingEvent procesa un evento del webhook del transportista, keyed
// por tracking number: actualiza el envío y recalcula el estado agregado del
// lote. Un evento sobre un tracking desconocido devuelve ErrNotFound para que
// el handler responda 404 (el carrier reintenta).
func (uc *ShipmentUseCase) ApplyTrackingEvent(ctx context.Context, in dto.TrackingEventRequest) error {
	if in.TrackingNumber == "" {
		return domain.ErrInvalidInput
	}
	shipment, err := uc.shipmentRepo.GetByTrackingNumber(in.TrackingNumber)
	if err != nil {
		return err
	}
	if shipment == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	switch mapCarrierStatus(in.Status) {
	case TrackingShipped:
		applyStatus(shipment, entity.ShipmentStatusShipped, now)
	case TrackingDelivered:
		applyStatus(shipment, entity.ShipmentStatusDelivered, now)
	case TrackingException:
		// Una excepción no cambia el estado del envío; queda registrada por
		// el handler y el envío se resuelve manualmente
		return nil
	}
	shipment.UpdatedAt = now
	if err := uc.shipmentRepo.Update(shipment); err != nil {
		return err
	}
	return uc.RecalcBatchStatus(ctx, shipment.BatchID)
}
