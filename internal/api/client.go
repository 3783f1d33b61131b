package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hoffis/storecheck/internal/config"
	"github.com/hoffis/storecheck/internal/reconcile"
)

// ErrMalformedCatalog is returned when the product listing cannot be
// normalized into a usable id list. Without a catalog no per-product
// comparison is possible, so this is fatal for a run.
var ErrMalformedCatalog = errors.New("api: product catalog response has no usable shape")

// StoreClient is the reference-price side of a reconciliation: the
// authoritative backend the UI-rendered numbers are checked against.
type StoreClient interface {
	ListProducts(ctx context.Context) ([]reconcile.ProductRef, error)
	CatalogPrices(ctx context.Context) (map[string]string, error)
	ProductPrice(ctx context.Context, productID string) (string, error)
	ResponseTime(ctx context.Context, path string) (time.Duration, error)
}

// HTTPStoreClient implements StoreClient over the store's JSON API.
type HTTPStoreClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStoreClient creates a store API client for the configured base URL.
func NewStoreClient(cfg *config.StoreConfig) *HTTPStoreClient {
	return &HTTPStoreClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ListProducts fetches and normalizes the product catalog.
//
// Deployments of the store have shipped three listing shapes over time: a
// bare array of ids, an array of objects with an "id" field, and an object
// wrapping either in a "products" field. All three are accepted; anything
// else, or an empty result, is ErrMalformedCatalog.
func (c *HTTPStoreClient) ListProducts(ctx context.Context) ([]reconcile.ProductRef, error) {
	body, err := c.get(ctx, "/api/v1/product/list")
	if err != nil {
		return nil, err
	}

	products, err := parseCatalog(body)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: empty product list", ErrMalformedCatalog)
	}

	return products, nil
}

// CatalogPrices fetches the price text advertised in the product listing,
// keyed by product id. Listing shapes without a price field yield an empty
// map; the reconcile engine then records the absence per product instead of
// failing the run.
func (c *HTTPStoreClient) CatalogPrices(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, "/api/v1/product/list")
	if err != nil {
		return nil, err
	}
	return parseCatalogPrices(body), nil
}

// ProductPrice fetches the raw price text for one product. A non-success
// status or a missing/non-numeric price field is a distinguishable error so
// the reconcile engine can record it as a fetch failure.
func (c *HTTPStoreClient) ProductPrice(ctx context.Context, productID string) (string, error) {
	body, err := c.get(ctx, "/api/v1/price/"+productID)
	if err != nil {
		return "", err
	}

	var payload struct {
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse price response: %w", err)
	}
	if len(payload.Price) == 0 {
		return "", fmt.Errorf("price field missing for product %s", productID)
	}

	// The field is either a JSON number or a quoted price string.
	var asString string
	if err := json.Unmarshal(payload.Price, &asString); err == nil {
		return asString, nil
	}
	var asNumber float64
	if err := json.Unmarshal(payload.Price, &asNumber); err != nil {
		return "", fmt.Errorf("price field for product %s is not numeric: %s", productID, payload.Price)
	}
	return strings.TrimSpace(string(payload.Price)), nil
}

// ResponseTime measures one GET round trip against the given path. The body
// is drained so connection reuse does not skew later measurements.
func (c *HTTPStoreClient) ResponseTime(ctx context.Context, path string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}
	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return duration, fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	return duration, nil
}

func (c *HTTPStoreClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
