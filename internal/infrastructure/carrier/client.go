// Package carrier implementa el cliente HTTP del transportista: cotización de
// tarifas por peso y destino. Usa net/http de la stdlib; el API del carrier es
// JSON plano y no amerita un SDK.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
	"github.com/Joan-abreu/vialflow-pro-sub001/pkg/config"
)

var _ shipping.RateQuoter = (*Client)(nil)

// Client cliente del API de cotización del transportista.
type Client struct {
	baseURL    string
	apiKey     string
	originZip  string
	httpClient *http.Client
}

// NewClient construye el cliente con timeout de red de 15 s (el carrier
// cotiza contra varios servicios y puede tardar).
func NewClient(cfg config.CarrierConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		originZip:  cfg.OriginZip,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// rateRequest cuerpo del POST /rates del carrier.
type rateRequest struct {
	OriginZip string `json:"origin_zip"`
	DestZip   string `json:"dest_zip"`
	WeightLb  string `json:"weight_lb"`
}

// rateResponse respuesta del carrier.
type rateResponse struct {
	Rates []struct {
		Carrier      string `json:"carrier"`
		Service      string `json:"service"`
		Amount       string `json:"amount"`
		Currency     string `json:"currency"`
		DeliveryDays int    `json:"delivery_days"`
	} `json:"rates"`
}

// Quote cotiza tarifas para un peso y código postal de destino.
func (c *Client) Quote(ctx context.Context, weightLb decimal.Decimal, destZip string) ([]dto.RateQuoteDTO, error) {
	body, err := json.Marshal(rateRequest{
		OriginZip: c.originZip,
		DestZip:   destZip,
		WeightLb:  weightLb.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("carrier: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("carrier: construir request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier: cotizar tarifas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("carrier: respuesta %d: %s", resp.StatusCode, string(raw))
	}

	var out rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("carrier: decodificar respuesta: %w", err)
	}

	quotes := make([]dto.RateQuoteDTO, 0, len(out.Rates))
	for _, r := range out.Rates {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("carrier: monto inválido %q: %w", r.Amount, err)
		}
		quotes = append(quotes, dto.RateQuoteDTO{
			Carrier:      r.Carrier,
			Service:      r.Service,
			Amount:       amount,
			Currency:     r.Currency,
			DeliveryDays: r.DeliveryDays,
		})
	}
	return quotes, nil
}
