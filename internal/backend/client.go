package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// Client wraps the commerce backend's REST surface. It is the only component
// that touches the wire; everything above it deals in models and the
// BusinessError/transport error taxonomy.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  util.GetLogger(),
	}
}

// apiError is the backend's structured failure body
type apiError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do performs one request/response round trip. A 4xx with a decodable
// message body becomes a *BusinessError; everything else non-2xx, plus
// network and decode failures, is a transport error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	util.BackendRequestLatency.WithLabelValues(method + " " + path).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var ae apiError
		if resp.StatusCode < 500 && json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
			return &BusinessError{Status: resp.StatusCode, Message: ae.Message}
		}
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// Products fetches the full catalog
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts fetches the catalog filtered by the given text. A 404
// means no match and yields an empty list, not an error.
func (c *Client) SearchProducts(ctx context.Context, text string) ([]models.Product, error) {
	var products []models.Product
	path := "/products/search?value=" + url.QueryEscape(text)
	err := c.do(ctx, http.MethodGet, path, "", nil, &products)
	if err != nil {
		if be, ok := AsBusiness(err); ok && be.Status == http.StatusNotFound {
			return []models.Product{}, nil
		}
		return nil, err
	}
	return products, nil
}

// Cart fetches the raw cart for the session
func (c *Client) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateCart submits a (productId, qty) mutation and returns the updated
// authoritative raw cart. A qty of 0 or less is a removal request.
func (c *Client) UpdateCart(ctx context.Context, token, productID string, qty int) ([]models.CartEntry, error) {
	body := map[string]interface{}{"productId": productID, "qty": qty}
	var entries []models.CartEntry
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Addresses fetches the user's shipping addresses
func (c *Client) Addresses(ctx context.Context, token string) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, "/user/addresses", token, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// AddAddress adds a shipping address and returns the updated full list
func (c *Client) AddAddress(ctx context.Context, token, text string) ([]models.Address, error) {
	body := map[string]string{"address": text}
	var addresses []models.Address
	if err := c.do(ctx, http.MethodPost, "/user/addresses", token, body, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// DeleteAddress deletes an address by id and returns the updated full list
func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodDelete, "/user/addresses/"+addressID, token, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// Checkout submits the order for the selected address. The response carries
// only a success flag; the backend does not return an updated balance.
func (c *Client) Checkout(ctx context.Context, token, addressID string) (bool, error) {
	body := map[string]string{"addressId": addressID}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart/checkout", token, body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

// Login authenticates and returns the new session
func (c *Client) Login(ctx context.Context, username, password string) (models.Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Success  bool    `json:"success"`
		Token    string  `json:"token"`
		Username string  `json:"username"`
		Balance  float64 `json:"balance"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, Username: resp.Username, Balance: resp.Balance}, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", "", body, nil)
}
