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

// ProductUseCase casos de uso CRUD para productos de la tienda, más la
// gestión de su BOM de principios activos (tabla independiente del BOM de
// empaque del formato).
type ProductUseCase struct {
	repo         repository.ProductRepository
	vialTypeRepo repository.VialTypeRepository
	bomRepo      repository.ProductMaterialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, vialTypeRepo repository.VialTypeRepository, bomRepo repository.ProductMaterialRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, vialTypeRepo: vialTypeRepo, bomRepo: bomRepo}
}

// Create crea un producto asociado a un formato de envase.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.VialTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.PackPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	vialType, err := uc.vialTypeRepo.GetByID(in.VialTypeID)
	if err != nil {
		return nil, err
	}
	if vialType == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		VialTypeID:  in.VialTypeID,
		Price:       in.Price,
		PackPrice:   in.PackPrice,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.VialTypeID != nil {
		vialType, err := uc.vialTypeRepo.GetByID(*in.VialTypeID)
		if err != nil {
			return nil, err
		}
		if vialType == nil {
			return nil, domain.ErrNotFound
		}
		product.VialTypeID = *in.VialTypeID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.PackPrice != nil {
		if in.PackPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PackPrice = *in.PackPrice
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación (back-office).
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, limit, offset), nil
}

// Catalog lista los productos activos (tienda, público).
func (uc *ProductUseCase) Catalog() ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ReplaceBOM reemplaza el BOM de principios activos del producto.
func (uc *ProductUseCase) ReplaceBOM(productID string, in dto.ReplaceBOMRequest) error {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	lines := make([]entity.ProductMaterial, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.MaterialID == "" || !l.QuantityPerUnit.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		lines = append(lines, entity.ProductMaterial{
			ProductID:       productID,
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
		})
	}
	return uc.bomRepo.Replace(productID, lines)
}

// ListBOM devuelve el BOM de principios activos del producto.
func (uc *ProductUseCase) ListBOM(productID string) ([]dto.BOMLineResponse, error) {
	lines, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.BOMLineResponse{
			MaterialID:      l.MaterialID,
			QuantityPerUnit: l.QuantityPerUnit,
		})
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		VialTypeID:  p.VialTypeID,
		Price:       p.Price,
		PackPrice:   p.PackPrice,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
