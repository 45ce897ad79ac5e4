package checkout

import "context"

// PaymentGateway es el puerto hacia el proveedor de pagos.
// El intent lleva el ID de la orden en metadata; el webhook asíncrono de
// "pago exitoso" vuelve keyed por ese intent.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, orderID string) (intentID, clientSecret string, err error)
	CancelIntent(ctx context.Context, intentID string) error
}
