package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de órdenes de la tienda sobre PostgreSQL
// (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, customer_name, customer_email, ship_address, ship_city, ship_state, ship_zip, ship_country, status, currency, subtotal, shipping_cost, total, payment_intent_id, paid_at, created_at, updated_at`

// Create persiste una orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Number, o.CustomerName, o.CustomerEmail, o.ShipAddress, o.ShipCity,
		o.ShipState, o.ShipZip, o.ShipCountry, o.Status, o.Currency, o.Subtotal,
		o.ShippingCost, o.Total, o.PaymentIntentID, o.PaidAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *OrderRepo) CreateItem(it *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, sale_type, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.OrderID, it.ProductID, it.SaleType, it.Quantity, it.UnitPrice, it.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.q.QueryRow(context.Background(), query, id))
}

// GetByPaymentIntent obtiene la orden enlazada a un PaymentIntent (webhook de pago).
func (r *OrderRepo) GetByPaymentIntent(paymentIntentID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_intent_id = $1`
	return scanOrder(r.q.QueryRow(context.Background(), query, paymentIntentID))
}

// Update persiste la orden completa.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, currency = $3, subtotal = $4, shipping_cost = $5, total = $6,
		    payment_intent_id = $7, paid_at = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.Status, o.Currency, o.Subtotal, o.ShippingCost, o.Total,
		o.PaymentIntentID, o.PaidAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems lista las líneas de una orden.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, sale_type, quantity, unit_price, subtotal
		FROM order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SaleType,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista órdenes, opcionalmente filtradas por estado, más reciente primero.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail,
			&o.ShipAddress, &o.ShipCity, &o.ShipState, &o.ShipZip, &o.ShipCountry,
			&o.Status, &o.Currency, &o.Subtotal, &o.ShippingCost, &o.Total,
			&o.PaymentIntentID, &o.PaidAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerName, &o.CustomerEmail,
		&o.ShipAddress, &o.ShipCity, &o.ShipState, &o.ShipZip, &o.ShipCountry,
		&o.Status, &o.Currency, &o.Subtotal, &o.ShippingCost, &o.Total,
		&o.PaymentIntentID, &o.PaidAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}
