// Package client is the customer-facing API client for the ordering
// backend: menu lookup, order submission and order tracking. Tenant
// context (business, cooperate) is held explicitly on the client rather
// than read from ambient state, so the package works without any
// session environment around it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// apiError is the error payload of the response envelope.
type apiError struct {
	ResponseDescription string              `json:"responseDescription,omitempty"`
	Message             string              `json:"message,omitempty"`
	Errors              map[string][]string `json:"errors,omitempty"`
}

// Client talks to the ordering backend. BusinessID is required;
// CooperateID is an optional tenant qualifier sent only when set.
type Client struct {
	HTTP        *http.Client
	BaseURL     string
	BusinessID  string
	CooperateID string
}

func New(baseURL, businessID, cooperateID string) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		BaseURL:     strings.TrimRight(baseURL, "/"),
		BusinessID:  businessID,
		CooperateID: cooperateID,
	}
}

// Categories fetches the menu categories for the client's business.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/Menu/categories", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("businessId", c.BusinessID)
	if c.CooperateID != "" {
		req.Header.Set("cooperateId", c.CooperateID)
	}

	var env struct {
		IsSuccessful bool       `json:"isSuccessful"`
		Data         []Category `json:"data"`
		Error        *apiError  `json:"error,omitempty"`
	}
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	if !env.IsSuccessful {
		return nil, fmt.Errorf("fetch categories: %s", describe(env.Error))
	}
	return env.Data, nil
}

// Items fetches one page of items for a menu (category).
func (c *Client) Items(ctx context.Context, menuID string, page, pageSize int) (*MenuItemsPage, error) {
	q := url.Values{}
	q.Set("MenuId", menuID)
	q.Set("Page", strconv.Itoa(page))
	q.Set("PageSize", strconv.Itoa(pageSize))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/Menu/items?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("businessId", c.BusinessID)

	var env struct {
		IsSuccessful bool           `json:"isSuccessful"`
		Data         *MenuItemsPage `json:"data"`
		Error        *apiError      `json:"error,omitempty"`
	}
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	if !env.IsSuccessful || env.Data == nil {
		return nil, fmt.Errorf("fetch items: %s", describe(env.Error))
	}
	return env.Data, nil
}

// OrderByReference fetches the current state of an order by its
// human-shareable tracking reference.
func (c *Client) OrderByReference(ctx context.Context, reference string) (*OrderRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/Order/by-reference", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("reference", reference)
	req.Header.Set("businessId", c.BusinessID)
	if c.CooperateID != "" {
		req.Header.Set("cooperateId", c.CooperateID)
	}

	var env struct {
		IsSuccessful bool         `json:"isSuccessful"`
		Data         *OrderRecord `json:"data"`
		Error        *apiError    `json:"error,omitempty"`
	}
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	if !env.IsSuccessful || env.Data == nil {
		return nil, fmt.Errorf("fetch order %s: %s", reference, describe(env.Error))
	}
	return env.Data, nil
}

// do executes the request and decodes the response envelope into out.
// Transport failures come back as *NetworkError.
func (c *Client) do(req *http.Request, out any) error {
	res, err := c.HTTP.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func describe(apiErr *apiError) string {
	switch {
	case apiErr == nil:
		return "request failed"
	case apiErr.ResponseDescription != "":
		return apiErr.ResponseDescription
	case apiErr.Message != "":
		return apiErr.Message
	default:
		return "request failed"
	}
}
