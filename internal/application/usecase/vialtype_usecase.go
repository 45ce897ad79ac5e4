package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// VialTypeUseCase casos de uso para formatos de envase y su BOM de empaque.
type VialTypeUseCase struct {
	repo    repository.VialTypeRepository
	bomRepo repository.VialTypeMaterialRepository
}

// NewVialTypeUseCase construye el caso de uso.
func NewVialTypeUseCase(repo repository.VialTypeRepository, bomRepo repository.VialTypeMaterialRepository) *VialTypeUseCase {
	return &VialTypeUseCase{repo: repo, bomRepo: bomRepo}
}

// Create crea un formato de envase.
func (uc *VialTypeUseCase) Create(in dto.CreateVialTypeRequest) (*dto.VialTypeResponse, error) {
	if in.Name == "" || !in.CapacityML.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.BottlesPerPack < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vialType := &entity.VialType{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CapacityML:     in.CapacityML,
		BottlesPerPack: in.BottlesPerPack,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(vialType); err != nil {
		return nil, err
	}
	return toVialTypeResponse(vialType), nil
}

// GetByID obtiene un formato por ID.
func (uc *VialTypeUseCase) GetByID(id string) (*dto.VialTypeResponse, error) {
	vialType, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vialType == nil {
		return nil, nil
	}
	return toVialTypeResponse(vialType), nil
}

// List lista todos los formatos.
func (uc *VialTypeUseCase) List() ([]dto.VialTypeResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.VialTypeResponse, 0, len(list))
	for _, vt := range list {
		items = append(items, *toVialTypeResponse(vt))
	}
	return items, nil
}

// ReplaceBOM reemplaza el BOM de empaque del formato. Cada línea declara su
// base de multiplicación (per_unit, per_pack, per_box).
func (uc *VialTypeUseCase) ReplaceBOM(vialTypeID string, in dto.ReplaceBOMRequest) error {
	vialType, err := uc.repo.GetByID(vialTypeID)
	if err != nil {
		return err
	}
	if vialType == nil {
		return domain.ErrNotFound
	}
	lines := make([]entity.VialTypeMaterial, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.QuantityPerUnit.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if !validApplicationType(l.ApplicationType) {
			return domain.ErrInvalidInput
		}
		lines = append(lines, entity.VialTypeMaterial{
			VialTypeID:      vialTypeID,
			RawMaterialID:   l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
			ApplicationType: l.ApplicationType,
		})
	}
	return uc.bomRepo.Replace(vialTypeID, lines)
}

// ListBOM devuelve el BOM de empaque del formato.
func (uc *VialTypeUseCase) ListBOM(vialTypeID string) ([]dto.BOMLineResponse, error) {
	lines, err := uc.bomRepo.ListByVialType(vialTypeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.BOMLineResponse{
			MaterialID:      l.RawMaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
			ApplicationType: l.ApplicationType,
		})
	}
	return items, nil
}

func validApplicationType(s string) bool {
	switch s {
	case entity.ApplicationPerUnit, entity.ApplicationPerPack, entity.ApplicationPerBox:
		return true
	}
	return false
}

func toVialTypeResponse(vt *entity.VialType) *dto.VialTypeResponse {
	if vt == nil {
		return nil
	}
	return &dto.VialTypeResponse{
		ID:             vt.ID,
		Name:           vt.Name,
		CapacityML:     vt.CapacityML,
		BottlesPerPack: vt.BottlesPerPack,
		Active:         vt.Active,
	}
}
