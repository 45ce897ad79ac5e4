package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	domainprod "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// ShipmentUseCase gestiona envíos y cajas contra lotes de producción.
// Toda mutación que afecta el estado agregado del lote termina en
// RecalcBatchStatus (aggregator.go).
type ShipmentUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository
	batchRepo    repository.BatchRepository
	bomRepo      repository.VialTypeMaterialRepository
	ledger       MaterialLedger
	rateQuoter   RateQuoter
	slipGen      PackingSlipGenerator
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	txRunner TxRunner,
	shipmentRepo repository.ShipmentRepository,
	batchRepo repository.BatchRepository,
	bomRepo repository.VialTypeMaterialRepository,
	ledger MaterialLedger,
	rateQuoter RateQuoter,
	slipGen PackingSlipGenerator,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		batchRepo:    batchRepo,
		bomRepo:      bomRepo,
		ledger:       ledger,
		rateQuoter:   rateQuoter,
		slipGen:      slipGen,
	}
}

// Create crea un envío en preparing contra un lote y recalcula el estado del lote.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.BatchID == "" || in.DestName == "" || in.DestZip == "" {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.Status == entity.BatchStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	country := in.DestCountry
	if country == "" {
		country = "US"
	}
	shipment := &entity.Shipment{
		ID:          uuid.New().String(),
		BatchID:     in.BatchID,
		Status:      entity.ShipmentStatusPreparing,
		Carrier:     in.Carrier,
		DestName:    in.DestName,
		DestAddress: in.DestAddress,
		DestCity:    in.DestCity,
		DestState:   in.DestState,
		DestZip:     in.DestZip,
		DestCountry: country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.shipmentRepo.Create(shipment); err != nil {
		return nil, err
	}
	if err := uc.RecalcBatchStatus(ctx, in.BatchID); err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment), nil
}

// GetByID obtiene un envío por ID.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, nil
	}
	return toShipmentResponse(shipment), nil
}

// ListByBatch lista los envíos de un lote.
func (uc *ShipmentUseCase) ListByBatch(ctx context.Context, batchID string) ([]dto.ShipmentResponse, error) {
	shipments, err := uc.shipmentRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		items = append(items, *toShipmentResponse(s))
	}
	return items, nil
}

// Update aplica cambios manuales de estado/tracking y recalcula el lote.
func (uc *ShipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateShipmentRequest) (*dto.ShipmentResponse, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, nil
	}
	now := time.Now()
	if in.Status != nil {
		if !validShipmentStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		applyStatus(shipment, *in.Status, now)
	}
	if in.Carrier != nil {
		shipment.Carrier = *in.Carrier
	}
	if in.TrackingNumber != nil {
		shipment.TrackingNumber = *in.TrackingNumber
	}
	shipment.UpdatedAt = now
	if err := uc.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	if err := uc.RecalcBatchStatus(ctx, shipment.BatchID); err != nil {
		return nil, err
	}
	return toShipmentResponse(shipment), nil
}

// AddBox registra una caja física en un envío y recalcula las unidades
// despachadas del lote.
func (uc *ShipmentUseCase) AddBox(ctx context.Context, shipmentID string, in dto.AddBoxRequest) (*dto.BoxResponse, error) {
	if in.BoxNumber <= 0 || (in.PacksPerBox <= 0 && in.BottlesPerBox <= 0) {
		return nil, domain.ErrInvalidInput
	}
	shipment, err := uc.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}

	box := &entity.ShipmentBox{
		ID:            uuid.New().String(),
		ShipmentID:    shipmentID,
		BoxNumber:     in.BoxNumber,
		PacksPerBox:   in.PacksPerBox,
		BottlesPerBox: in.BottlesPerBox,
		WeightLb:      in.WeightLb,
		LengthIn:      in.LengthIn,
		WidthIn:       in.WidthIn,
		HeightIn:      in.HeightIn,
		CreatedAt:     time.Now(),
	}
	if err := uc.shipmentRepo.CreateBox(box); err != nil {
		return nil, err
	}
	if err := uc.RecalcBatchStatus(ctx, shipment.BatchID); err != nil {
		return nil, err
	}
	return &dto.BoxResponse{
		ID:            box.ID,
		ShipmentID:    box.ShipmentID,
		BoxNumber:     box.BoxNumber,
		PacksPerBox:   box.PacksPerBox,
		BottlesPerBox: box.BottlesPerBox,
		WeightLb:      box.WeightLb,
	}, nil
}

// RestoreBoxMaterials devuelve al libro los materiales per_box de un envío
// que se revierte (la única ruta donde la base per_box es resoluble: ya
// existen cajas). Corre en una sola transacción.
func (uc *ShipmentUseCase) RestoreBoxMaterials(ctx context.Context, shipmentID, userID string) error {
	if shipmentID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunShipping(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.MaterialMovementRepository,
		batchRepo repository.BatchRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		shipment, err := shipmentRepo.GetByID(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		batch, err := batchRepo.GetByID(shipment.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		boxes, err := shipmentRepo.ListBoxes(shipmentID)
		if err != nil {
			return err
		}
		if len(boxes) == 0 {
			return nil
		}

		bomLines, err := uc.bomRepo.ListByVialType(batch.VialTypeID)
		if err != nil {
			return err
		}
		// Solo las líneas per_box; per_unit/per_pack se restauran a nivel de lote
		perBox := make([]entity.VialTypeMaterial, 0, len(bomLines))
		for _, line := range bomLines {
			if line.ApplicationType == entity.ApplicationPerBox {
				perBox = append(perBox, line)
			}
		}
		reqs := domainprod.RequirementsFor(perBox, batch, len(boxes))
		for _, req := range reqs {
			if _, err := uc.ledger.AdjustInTx(materialRepo, movRepo, req.MaterialID, req.Quantity, inventory.DirectionAdd, shipment.ID, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// RateQuotes cotiza tarifas con el transportista para un peso y destino.
func (uc *ShipmentUseCase) RateQuotes(ctx context.Context, weightLb decimal.Decimal, destZip string) ([]dto.RateQuoteDTO, error) {
	if !weightLb.GreaterThan(decimal.Zero) || destZip == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.rateQuoter.Quote(ctx, weightLb, destZip)
}

// PackingSlip genera el PDF de la guía de empaque de un envío.
func (uc *ShipmentUseCase) PackingSlip(ctx context.Context, shipmentID string) ([]byte, error) {
	shipment, err := uc.shipmentRepo.GetByID(shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByID(shipment.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	boxes, err := uc.shipmentRepo.ListBoxes(shipmentID)
	if err != nil {
		return nil, err
	}
	return uc.slipGen.Generate(shipment, batch, boxes)
}

func validShipmentStatus(s string) bool {
	switch s {
	case entity.ShipmentStatusPreparing, entity.ShipmentStatusPending,
		entity.ShipmentStatusShipped, entity.ShipmentStatusDelivered:
		return true
	}
	return false
}

// applyStatus fija el estado y sus timestamps asociados.
func applyStatus(s *entity.Shipment, status string, now time.Time) {
	s.Status = status
	switch status {
	case entity.ShipmentStatusShipped:
		if s.ShippedAt == nil {
			s.ShippedAt = &now
		}
	case entity.ShipmentStatusDelivered:
		if s.DeliveredAt == nil {
			s.DeliveredAt = &now
		}
	}
}

func toShipmentResponse(s *entity.Shipment) *dto.ShipmentResponse {
	if s == nil {
		return nil
	}
	return &dto.ShipmentResponse{
		ID:             s.ID,
		BatchID:        s.BatchID,
		Status:         s.Status,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		DestName:       s.DestName,
		DestCity:       s.DestCity,
		DestState:      s.DestState,
		DestZip:        s.DestZip,
		ShippedAt:      s.ShippedAt,
		DeliveredAt:    s.DeliveredAt,
		CreatedAt:      s.CreatedAt,
	}
}
