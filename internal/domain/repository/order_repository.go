package repository

import "github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes de la tienda.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetByPaymentIntent(paymentIntentID string) (*entity.Order, error)
	Update(order *entity.Order) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
}
