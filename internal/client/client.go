package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"addressbook-backend/internal/domains/address"
	"addressbook-backend/internal/domains/address/model"
	"addressbook-backend/internal/domains/menu"
)

// APIError is the client-side view of a normalized failure response.
type APIError struct {
	StatusCode int
	Message    string
	Details    []address.FieldViolation
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		parts := make([]string, len(e.Details))
		for i, d := range e.Details {
			parts[i] = fmt.Sprintf("%s: %s", d.Path, d.Message)
		}
		return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
	}
	return e.Message
}

// Client talks JSON to the address API, sending the shared secret on
// every request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type successEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error   bool                     `json:"error"`
	Message string                   `json:"message"`
	Details []address.FieldViolation `json:"details"`
}

// do sends one request and decodes either envelope. out may be nil for
// calls whose data the caller does not need.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Message == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Message,
			Details:    envelope.Details,
		}
	}

	if out == nil {
		return nil
	}

	var envelope successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// List fetches the address collection, optionally server-filtered.
func (c *Client) List(ctx context.Context, search string) ([]model.AddressResponse, error) {
	path := "/addresses"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var addresses []model.AddressResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*model.AddressResponse, error) {
	var addr model.AddressResponse
	if err := c.do(ctx, http.MethodGet, "/addresses/"+id.String(), nil, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *Client) GetByPhone(ctx context.Context, phone string) (*model.CustomerProjection, error) {
	var proj model.CustomerProjection
	if err := c.do(ctx, http.MethodGet, "/addresses/phone/"+url.PathEscape(phone), nil, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

func (c *Client) GetByCustomerNumber(ctx context.Context, n int64) (*model.AddressResponse, error) {
	var addr model.AddressResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/addresses/customer_number/%d", n), nil, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *Client) Create(ctx context.Context, req *model.AddressCreateRequest) (*model.AddressResponse, error) {
	var addr model.AddressResponse
	if err := c.do(ctx, http.MethodPost, "/addresses", req, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, req *model.AddressUpdateRequest) (*model.AddressResponse, error) {
	var addr model.AddressResponse
	if err := c.do(ctx, http.MethodPut, "/addresses/"+id.String(), req, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/addresses/"+id.String(), nil, nil)
}

// Menu fetches the public navigation listing. The menu endpoint returns
// a bare array, not the success envelope.
func (c *Client) Menu(ctx context.Context) ([]menu.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/menu", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	var items []menu.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return items, nil
}
