package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListActive() ([]*entity.Product, error)
}

// VialTypeRepository define el puerto para formatos de envase.
type VialTypeRepository interface {
	Create(vialType *entity.VialType) error
	GetByID(id string) (*entity.VialType, error)
	Update(vialType *entity.VialType) error
	List() ([]*entity.VialType, error)
}
