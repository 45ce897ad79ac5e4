package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/checkout"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/logger"
)

// Header con la firma HMAC de los eventos de tracking del carrier.
const carrierSignatureHeader = "X-Carrier-Signature"

// WebhookHandler recibe eventos de Stripe y del transportista.
// Ambos endpoints son públicos; la autenticidad se valida por firma.
type WebhookHandler struct {
	checkoutUC          *checkout.CheckoutUseCase
	shipmentUC          *shipping.ShipmentUseCase
	stripeSecret        string
	carrierSecret       string
	log                 *logger.Logger
	allowUnsignedEvents bool // solo para entornos de desarrollo sin secreto configurado
}

// NewWebhookHandler construye el handler de webhooks.
func NewWebhookHandler(checkoutUC *checkout.CheckoutUseCase, shipmentUC *shipping.ShipmentUseCase, stripeSecret, carrierSecret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		checkoutUC:          checkoutUC,
		shipmentUC:          shipmentUC,
		stripeSecret:        stripeSecret,
		carrierSecret:       carrierSecret,
		log:                 log,
		allowUnsignedEvents: carrierSecret == "",
	}
}

// Stripe godoc
// @Summary      Webhook de Stripe
// @Description  Valida la firma y marca la orden como pagada en
// @Description  payment_intent.succeeded. Idempotente ante reintentos.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), h.stripeSecret)
	if err != nil {
		h.log.Warn().Err(err).Msg("firma de webhook de Stripe inválida")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "payload inesperado"})
		}
		if err := h.checkoutUC.MarkPaid(c.Context(), intent.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Intento que no corresponde a ninguna orden nuestra; lo
				// reconocemos para que Stripe no reintente.
				h.log.Warn().Str("payment_intent", intent.ID).Msg("webhook de pago sin orden asociada")
				return c.SendStatus(fiber.StatusOK)
			}
			return respondDomainError(c, err)
		}
		h.log.Info().Str("payment_intent", intent.ID).Msg("orden marcada como pagada")
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err == nil {
			h.log.Warn().Str("payment_intent", intent.ID).Msg("intento de pago fallido")
		}
	default:
		h.log.Debug().Str("type", string(event.Type)).Msg("evento de Stripe ignorado")
	}
	return c.SendStatus(fiber.StatusOK)
}

// Carrier godoc
// @Summary      Webhook de tracking del transportista
// @Description  Valida la firma HMAC y aplica el evento al envío por número
// @Description  de tracking. Estados desconocidos del carrier se registran
// @Description  sin modificar el envío.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/webhooks/carrier [post]
func (h *WebhookHandler) Carrier(c *fiber.Ctx) error {
	body := c.Body()
	if !h.verifyCarrierSignature(body, c.Get(carrierSignatureHeader)) {
		h.log.Warn().Msg("firma de webhook del carrier inválida")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	var in dto.TrackingEventRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return badBody(c)
	}
	if err := h.shipmentUC.ApplyTrackingEvent(c.Context(), in); err != nil {
		return respondDomainError(c, err)
	}
	h.log.Info().
		Str("tracking_number", in.TrackingNumber).
		Str("status", in.Status).
		Msg("evento de tracking aplicado")
	return c.SendStatus(fiber.StatusOK)
}

// verifyCarrierSignature compara la firma del header contra
// hex(HMAC-SHA256(base64(body))) con el secreto compartido.
func (h *WebhookHandler) verifyCarrierSignature(body []byte, signature string) bool {
	if h.allowUnsignedEvents {
		return true
	}
	if signature == "" {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString(body)
	mac := hmac.New(sha256.New, []byte(h.carrierSecret))
	mac.Write([]byte(encoded))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
