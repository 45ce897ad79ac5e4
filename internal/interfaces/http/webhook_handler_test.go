package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	apphttp "github.com/Joan-abreu/vialflow-pro-sub001/internal/interfaces/http"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/logger"
)

const carrierTestSecret = "carrier-webhook-secret"

// stubShipmentRepo solo implementa lo que el webhook de tracking toca.
type stubShipmentRepo struct {
	byTracking map[string]*entity.Shipment
	updated    int
}

func (r *stubShipmentRepo) Create(*entity.Shipment) error { return nil }
func (r *stubShipmentRepo) GetByID(string) (*entity.Shipment, error) {
	return nil, nil
}
func (r *stubShipmentRepo) GetByTrackingNumber(trackingNumber string) (*entity.Shipment, error) {
	return r.byTracking[trackingNumber], nil
}
func (r *stubShipmentRepo) Update(*entity.Shipment) error { r.updated++; return nil }
func (r *stubShipmentRepo) ListByBatch(string) ([]*entity.Shipment, error) {
	return nil, nil
}
func (r *stubShipmentRepo) CreateBox(*entity.ShipmentBox) error { return nil }
func (r *stubShipmentRepo) ListBoxes(string) ([]*entity.ShipmentBox, error) {
	return nil, nil
}
func (r *stubShipmentRepo) DeleteBox(string) error { return nil }

func buildWebhookApp(repo *stubShipmentRepo) *fiber.App {
	shipmentUC := shipping.NewShipmentUseCase(nil, repo, nil, nil, nil, nil, nil)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	handler := apphttp.NewWebhookHandler(nil, shipmentUC, "whsec_test", carrierTestSecret, log)

	app := fiber.New()
	app.Post("/api/webhooks/stripe", handler.Stripe)
	app.Post("/api/webhooks/carrier", handler.Carrier)
	return app
}

// signCarrierBody firma igual que el carrier: hex(HMAC-SHA256(base64(body))).
func signCarrierBody(body []byte) string {
	encoded := base64.StdEncoding.EncodeToString(body)
	mac := hmac.New(sha256.New, []byte(carrierTestSecret))
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

func postCarrierEvent(t *testing.T, app *fiber.App, body []byte, signature string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/carrier", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Carrier-Signature", signature)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCarrierWebhook_FirmaInvalida_Retorna401(t *testing.T) {
	repo := &stubShipmentRepo{byTracking: map[string]*entity.Shipment{}}
	app := buildWebhookApp(repo)

	body := []byte(`{"tracking_number":"1Z999","status":"delivered"}`)
	resp := postCarrierEvent(t, app, body, "deadbeef")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, repo.updated, "un evento sin firma válida no debe tocar nada")
}

func TestCarrierWebhook_SinFirma_Retorna401(t *testing.T) {
	repo := &stubShipmentRepo{byTracking: map[string]*entity.Shipment{}}
	app := buildWebhookApp(repo)

	body := []byte(`{"tracking_number":"1Z999","status":"delivered"}`)
	resp := postCarrierEvent(t, app, body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCarrierWebhook_TrackingDesconocido_Retorna404(t *testing.T) {
	repo := &stubShipmentRepo{byTracking: map[string]*entity.Shipment{}}
	app := buildWebhookApp(repo)

	body := []byte(`{"tracking_number":"NO-EXISTE","status":"delivered"}`)
	resp := postCarrierEvent(t, app, body, signCarrierBody(body))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"tracking desconocido debe responder 404 para que el carrier reintente")
}

func TestCarrierWebhook_EstadoDesconocido_Retorna200SinCambios(t *testing.T) {
	repo := &stubShipmentRepo{byTracking: map[string]*entity.Shipment{
		"1Z777": {ID: "ship-1", BatchID: "batch-1", Status: entity.ShipmentStatusPreparing, TrackingNumber: "1Z777"},
	}}
	app := buildWebhookApp(repo)

	body := []byte(`{"tracking_number":"1Z777","status":"customs_hold"}`)
	resp := postCarrierEvent(t, app, body, signCarrierBody(body))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, repo.updated,
		"un estado desconocido del carrier se reconoce pero no modifica el envío")
}

func TestStripeWebhook_FirmaInvalida_Retorna400(t *testing.T) {
	repo := &stubShipmentRepo{byTracking: map[string]*entity.Shipment{}}
	app := buildWebhookApp(repo)

	body := []byte(`{"type":"payment_intent.succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", "t=1,v1=invalida")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
