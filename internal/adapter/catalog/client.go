package catalog

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

// Client exposes operations to validate products against the catalog service.
type Client interface {
	Validate(ctx context.Context, ids []string) ([]model.Product, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type validateRequest struct {
	IDs []string `json:"ids"`
}

// productResponse mirrors JSON payload from the catalog service.
type productResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Validate asks the catalog to confirm product ids and returns the
// authoritative name/price snapshot for each confirmed product.
func (c *HTTPClient) Validate(ctx context.Context, ids []string) ([]model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/validate")

	payload, err := json.Marshal(validateRequest{IDs: ids})
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
		return nil, fmt.Errorf("catalog request: %w", domainErrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data []productResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		products := make([]model.Product, 0, len(data))
		for _, p := range data {
			products = append(products, model.Product{ID: p.ID, Name: p.Name, Price: p.Price})
		}
		return products, nil
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("catalog rejected products", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, domainErrors.ErrProductValidation
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error %s: %w", resp.Status, domainErrors.ErrUpstreamUnavailable)
	}
}
