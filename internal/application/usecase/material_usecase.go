package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materias primas y sus categorías.
// El stock se ajusta vía el libro de materiales, nunca por edición directa;
// las materias primas no se eliminan, se desactivan.
type MaterialUseCase struct {
	materialRepo repository.RawMaterialRepository
	categoryRepo repository.MaterialCategoryRepository
	movementRepo repository.MaterialMovementRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	materialRepo repository.RawMaterialRepository,
	categoryRepo repository.MaterialCategoryRepository,
	movementRepo repository.MaterialMovementRepository,
) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo, categoryRepo: categoryRepo, movementRepo: movementRepo}
}

// Create crea una materia prima con su stock inicial.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || in.Unit == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock.IsNegative() || in.MinStockLevel.IsNegative() || in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	material := &entity.RawMaterial{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Unit:          in.Unit,
		CurrentStock:  in.InitialStock,
		MinStockLevel: in.MinStockLevel,
		CostPerUnit:   in.CostPerUnit,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update modifica una materia prima. No permite tocar CurrentStock.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		material.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.MinStockLevel != nil {
		if in.MinStockLevel.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.MinStockLevel = *in.MinStockLevel
	}
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.CostPerUnit = *in.CostPerUnit
	}
	if in.Active != nil {
		material.Active = *in.Active
	}
	material.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materias primas con paginación.
func (uc *MaterialUseCase) List(limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.materialRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Movements devuelve el histórico de movimientos de una materia prima.
func (uc *MaterialUseCase) Movements(materialID string, limit, offset int) ([]dto.MovementResponse, error) {
	movements, err := uc.movementRepo.ListByMaterial(materialID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		items = append(items, dto.MovementResponse{
			ID:         mov.ID,
			MaterialID: mov.MaterialID,
			Type:       mov.Type,
			Quantity:   mov.Quantity,
			Reference:  mov.Reference,
			Date:       mov.Date,
			CreatedBy:  mov.CreatedBy,
		})
	}
	return items, nil
}

// CreateCategory crea una categoría de materias primas.
func (uc *MaterialUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.MaterialCategory{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name, Active: category.Active}, nil
}

// ListCategories lista categorías.
func (uc *MaterialUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, dto.CategoryResponse{ID: c.ID, Name: c.Name, Active: c.Active})
	}
	return items, nil
}

// DisableCategory desactiva una categoría (las materias primas nunca se borran).
func (uc *MaterialUseCase) DisableCategory(id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	category.Active = false
	category.UpdatedAt = time.Now()
	return uc.categoryRepo.Update(category)
}

func toMaterialResponse(m *entity.RawMaterial) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:            m.ID,
		CategoryID:    m.CategoryID,
		Name:          m.Name,
		Unit:          m.Unit,
		CurrentStock:  m.CurrentStock,
		MinStockLevel: m.MinStockLevel,
		CostPerUnit:   m.CostPerUnit,
		Active:        m.Active,
		BelowMinimum:  m.BelowMinimum(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
