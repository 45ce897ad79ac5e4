package production

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	domainprod "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/production"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// BatchUseCase casos de uso CRUD para lotes de producción.
// El stock y los estados in_progress/completed se manejan vía
// StartProductionUseCase y el agregador de envíos.
type BatchUseCase struct {
	batchRepo    repository.BatchRepository
	vialTypeRepo repository.VialTypeRepository
	productRepo  repository.ProductRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batchRepo repository.BatchRepository, vialTypeRepo repository.VialTypeRepository, productRepo repository.ProductRepository) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, vialTypeRepo: vialTypeRepo, productRepo: productRepo}
}

// Create crea un lote en pending. La cantidad se normaliza a unidades base
// (botellas) al persistir: con SaleType = pack la cantidad ingresada son
// packs y se expande por BottlesPerPack del formato.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.BatchNumber == "" || in.VialTypeID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleType != entity.SaleTypeIndividual && in.SaleType != entity.SaleTypePack {
		return nil, domain.ErrInvalidInput
	}

	vialType, err := uc.vialTypeRepo.GetByID(in.VialTypeID)
	if err != nil {
		return nil, err
	}
	if vialType == nil {
		return nil, domain.ErrNotFound
	}
	if in.ProductID != "" {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	packQuantity := 0
	if in.SaleType == entity.SaleTypePack {
		if vialType.BottlesPerPack <= 0 {
			return nil, domain.ErrInvalidInput
		}
		packQuantity = in.Quantity
	}

	now := time.Now()
	batch := &entity.ProductionBatch{
		ID:           uuid.New().String(),
		BatchNumber:  in.BatchNumber,
		VialTypeID:   in.VialTypeID,
		ProductID:    in.ProductID,
		Quantity:     domainprod.BaseUnits(in.SaleType, in.Quantity, vialType.BottlesPerPack),
		SaleType:     in.SaleType,
		PackQuantity: packQuantity,
		Status:       entity.BatchStatusPending,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch), nil
}

// Update modifica campos editables de un lote no terminal.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if batch.Terminal() {
		return nil, domain.ErrInvalidTransition
	}
	if in.BatchNumber != nil {
		batch.BatchNumber = *in.BatchNumber
	}
	if in.Notes != nil {
		batch.Notes = *in.Notes
	}
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// List lista lotes, opcionalmente filtrados por estado, con paginación.
func (uc *BatchUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.BatchListResponse, error) {
	list, err := uc.batchRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toBatchResponse(b *entity.ProductionBatch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:           b.ID,
		BatchNumber:  b.BatchNumber,
		VialTypeID:   b.VialTypeID,
		ProductID:    b.ProductID,
		Quantity:     b.Quantity,
		SaleType:     b.SaleType,
		PackQuantity: b.PackQuantity,
		Status:       b.Status,
		StartedAt:    b.StartedAt,
		CompletedAt:  b.CompletedAt,
		ShippedUnits: b.ShippedUnits,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
