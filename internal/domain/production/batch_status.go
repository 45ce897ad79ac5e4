package production

import (
	"time"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
)

// BatchStatusResult es el resultado de derivar el estado agregado de un lote
// a partir de sus envíos. Changed indica si hay algo que persistir; cuando la
// combinación de estados no matchea ninguna regla el estado queda como está
// (no-op explícito, no una omisión).
type BatchStatusResult struct {
	Status       string
	ShippedUnits int
	StartedAt    *time.Time
	CompletedAt  *time.Time
	Changed      bool
}

// DeriveBatchStatus deriva el estado de un lote desde sus envíos y cajas
// (servicio de dominio puro; el caller persiste el resultado en un solo update).
//
// Reglas, en orden de precedencia:
//  1. sin envíos                         -> pending
//  2. algún envío pending o preparing    -> in_progress
//  3. todos los envíos delivered         -> completed (fija CompletedAt)
//  4. cualquier otra combinación         -> estado sin modificar
//
// ShippedUnits se recalcula siempre sumando las cajas según la modalidad de
// venta del propio lote (PacksPerBox con pack, BottlesPerBox con individual).
// El envío pending más antiguo respalda StartedAt si el lote no lo tiene.
func DeriveBatchStatus(batch *entity.ProductionBatch, shipments []*entity.Shipment, boxesByShipment map[string][]*entity.ShipmentBox, now time.Time) BatchStatusResult {
	res := BatchStatusResult{
		Status:       batch.Status,
		ShippedUnits: sumShippedUnits(batch.SaleType, shipments, boxesByShipment),
		StartedAt:    batch.StartedAt,
		CompletedAt:  batch.CompletedAt,
	}

	if len(shipments) == 0 {
		res.Status = entity.BatchStatusPending
	} else if anyShipmentIn(shipments, entity.ShipmentStatusPending, entity.ShipmentStatusPreparing) {
		res.Status = entity.BatchStatusInProgress
	} else if allShipmentsDelivered(shipments) {
		res.Status = entity.BatchStatusCompleted
		if res.CompletedAt == nil {
			res.CompletedAt = &now
		}
	}

	if batch.StartedAt == nil {
		if earliest := earliestPendingShipment(shipments); earliest != nil {
			t := earliest.CreatedAt
			res.StartedAt = &t
		}
	}

	res.Changed = res.Status != batch.Status ||
		res.ShippedUnits != batch.ShippedUnits ||
		(batch.StartedAt == nil && res.StartedAt != nil) ||
		(batch.CompletedAt == nil && res.CompletedAt != nil)
	return res
}

// sumShippedUnits suma las unidades despachadas según la modalidad de venta
// del lote: packs por caja con SaleType = pack, botellas por caja con individual.
func sumShippedUnits(saleType string, shipments []*entity.Shipment, boxesByShipment map[string][]*entity.ShipmentBox) int {
	total := 0
	for _, s := range shipments {
		for _, box := range boxesByShipment[s.ID] {
			if saleType == entity.SaleTypePack {
				total += box.PacksPerBox
			} else {
				total += box.BottlesPerBox
			}
		}
	}
	return total
}

func anyShipmentIn(shipments []*entity.Shipment, statuses ...string) bool {
	for _, s := range shipments {
		for _, st := range statuses {
			if s.Status == st {
				return true
			}
		}
	}
	return false
}

func allShipmentsDelivered(shipments []*entity.Shipment) bool {
	for _, s := range shipments {
		if s.Status != entity.ShipmentStatusDelivered {
			return false
		}
	}
	return len(shipments) > 0
}

func earliestPendingShipment(shipments []*entity.Shipment) *entity.Shipment {
	var earliest *entity.Shipment
	for _, s := range shipments {
		if s.Status != entity.ShipmentStatusPending {
			continue
		}
		if earliest == nil || s.CreatedAt.Before(earliest.CreatedAt) {
			earliest = s
		}
	}
	return earliest
}
