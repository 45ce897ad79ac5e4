package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios del back-office.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}
