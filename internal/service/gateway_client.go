package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrGatewayRateLimited = errors.New("gateway rate limit exceeded")
	ErrPayloadRejected    = errors.New("payload rejected by gateway")
)

// GatewayClient talks to the external payment API.
type GatewayClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// GatewayOrder is the gateway's view of a created order.
type GatewayOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

func NewGatewayClient(baseURL, apiKey string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder posts a converted payload to the gateway's "create order"
// endpoint and returns the created gateway order.
func (c *GatewayClient) CreateOrder(ctx context.Context, payload map[string]any) (*GatewayOrder, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/v2/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var res GatewayOrder
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &res, nil
	case http.StatusTooManyRequests:
		return nil, ErrGatewayRateLimited
	case http.StatusUnprocessableEntity:
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrPayloadRejected, string(detail))
	default:
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status: %d, body: %s", resp.StatusCode, string(detail))
	}
}
