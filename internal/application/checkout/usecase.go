package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// CheckoutUseCase crea órdenes de la tienda con su PaymentIntent y procesa la
// confirmación asíncrona del pago (webhook). El precio siempre sale del
// catálogo, nunca del request.
type CheckoutUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	gateway     PaymentGateway
	currency    string
}

// NewCheckoutUseCase construye el caso de uso. currency en ISO 4217 minúsculas.
func NewCheckoutUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, gateway PaymentGateway, currency string) *CheckoutUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutUseCase{orderRepo: orderRepo, productRepo: productRepo, gateway: gateway, currency: currency}
}

// CreateOrder valida el carrito, calcula totales con precios del catálogo,
// persiste la orden en pending y crea el PaymentIntent con el order_id en
// metadata. Devuelve el client secret para que el frontend confirme el pago.
func (uc *CheckoutUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerEmail == "" || in.ShipAddress == "" || in.ShipZip == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	orderID := uuid.New().String()
	var subtotal decimal.Decimal
	items := make([]*entity.OrderItem, 0, len(in.Items))
	responses := make([]dto.OrderItemResponse, 0, len(in.Items))

	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.SaleType != entity.SaleTypeIndividual && line.SaleType != entity.SaleTypePack {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.Price
		if line.SaleType == entity.SaleTypePack {
			if product.PackPrice.IsZero() {
				return nil, domain.ErrInvalidInput // el producto no se vende por pack
			}
			unitPrice = product.PackPrice
		}
		lineSubtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			SaleType:  line.SaleType,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  lineSubtotal,
		})
		responses = append(responses, dto.OrderItemResponse{
			ProductID: line.ProductID,
			SaleType:  line.SaleType,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  lineSubtotal,
		})
	}

	country := in.ShipCountry
	if country == "" {
		country = "US"
	}
	total := subtotal // el costo de envío se cobra aparte al generar la guía
	order := &entity.Order{
		ID:            orderID,
		Number:        fmt.Sprintf("VF-%d", now.Unix()),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		ShipAddress:   in.ShipAddress,
		ShipCity:      in.ShipCity,
		ShipState:     in.ShipState,
		ShipZip:       in.ShipZip,
		ShipCountry:   country,
		Status:        entity.OrderStatusPending,
		Currency:      uc.currency,
		Subtotal:      subtotal,
		ShippingCost:  decimal.Zero,
		Total:         total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// El proveedor de pagos trabaja en centavos
	amountCents := total.Mul(decimal.NewFromInt(100)).IntPart()
	intentID, clientSecret, err := uc.gateway.CreateIntent(ctx, amountCents, uc.currency, orderID)
	if err != nil {
		return nil, fmt.Errorf("crear payment intent: %w", err)
	}
	order.PaymentIntentID = intentID

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.orderRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	resp := toOrderResponse(order, responses)
	resp.ClientSecret = clientSecret
	return resp, nil
}

// MarkPaid procesa la confirmación asíncrona del pago, keyed por el
// PaymentIntent. Idempotente: una orden ya pagada es un no-op.
func (uc *CheckoutUseCase) MarkPaid(ctx context.Context, paymentIntentID string) error {
	if paymentIntentID == "" {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByPaymentIntent(paymentIntentID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusPaid || order.Status == entity.OrderStatusFulfilled {
		return nil // webhook reentregado; nada que hacer
	}
	if order.Status != entity.OrderStatusPending {
		return domain.ErrOrderNotPayable
	}
	now := time.Now()
	order.Status = entity.OrderStatusPaid
	order.PaidAt = &now
	order.UpdatedAt = now
	return uc.orderRepo.Update(order)
}

// GetOrder obtiene una orden con sus líneas.
func (uc *CheckoutUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orderRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.OrderItemResponse{
			ProductID: it.ProductID,
			SaleType:  it.SaleType,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return toOrderResponse(order, lines), nil
}

// ListOrders lista órdenes para el back-office, filtrables por estado.
func (uc *CheckoutUseCase) ListOrders(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MarkFulfilled marca una orden pagada como despachada (back-office).
func (uc *CheckoutUseCase) MarkFulfilled(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPaid {
		return domain.ErrInvalidTransition
	}
	order.Status = entity.OrderStatusFulfilled
	order.UpdatedAt = time.Now()
	return uc.orderRepo.Update(order)
}

// CancelOrder cancela una orden pending y su PaymentIntent.
func (uc *CheckoutUseCase) CancelOrder(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return domain.ErrInvalidTransition
	}
	if order.PaymentIntentID != "" {
		if err := uc.gateway.CancelIntent(ctx, order.PaymentIntentID); err != nil {
			return fmt.Errorf("cancelar payment intent: %w", err)
		}
	}
	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	return uc.orderRepo.Update(order)
}

func toOrderResponse(o *entity.Order, items []dto.OrderItemResponse) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		Currency:     o.Currency,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Total:        o.Total,
		Items:        items,
		PaidAt:       o.PaidAt,
		CreatedAt:    o.CreatedAt,
	}
}
