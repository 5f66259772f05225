package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/storekit/orders/internal/domain/errors"
	"github.com/storekit/orders/internal/domain/model"
)

// Client exposes operations against the payment provider service.
type Client interface {
	CreateSession(ctx context.Context, req model.PaymentSessionRequest) (*model.PaymentSession, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type sessionRequest struct {
	OrderID  string        `json:"orderId"`
	Currency string        `json:"currency"`
	Items    []sessionItem `json:"items"`
}

// sessionResponse mirrors JSON payload from the payment provider.
type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NewHTTPClient creates HTTP payments client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payments url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payments url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession opens a checkout session for a persisted order.
func (c *HTTPClient) CreateSession(ctx context.Context, session model.PaymentSessionRequest) (*model.PaymentSession, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/payments/session")

	items := make([]sessionItem, 0, len(session.Items))
	for _, item := range session.Items {
		items = append(items, sessionItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	payload, err := json.Marshal(sessionRequest{OrderID: session.OrderID, Currency: session.Currency, Items: items})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments request: %w", domainErrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment session request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payments error %s: %w", resp.Status, domainErrors.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data sessionResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &model.PaymentSession{ID: data.ID, URL: data.URL}, nil
}
