// Package payments implementa el puerto de pagos sobre Stripe.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/checkout"
)

var _ checkout.PaymentGateway = (*StripeGateway)(nil)

// StripeGateway adaptador de checkout.PaymentGateway sobre la API de Stripe.
// Cada intent lleva el order_id en metadata; el webhook de payment_intent
// succeeded vuelve keyed por el ID del intent.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway construye el gateway con la secret key (sk_test_/sk_live_).
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// CreateIntent crea un PaymentIntent por el monto en centavos y devuelve su ID
// y el client secret para que el frontend confirme el pago.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency, orderID string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID)

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe: crear payment intent: %w", err)
	}
	return intent.ID, intent.ClientSecret, nil
}

// CancelIntent cancela un PaymentIntent aún no capturado.
func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := g.api.PaymentIntents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("stripe: cancelar payment intent: %w", err)
	}
	return nil
}
