// Package boardclient talks to the order API on behalf of a board. Client
// satisfies both kanban.Feed and kanban.Mover.
package boardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"watches-backend/pkg/kanban"
)

var ErrUnauthorized = errors.New("not authenticated")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == http.StatusUnauthorized
}

// OrderSummary is the card payload shown on the board.
type OrderSummary struct {
	OrderNumber  string    `json:"order_number"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use, set by WithToken or Login.
func (c *Client) Token() string { return c.token }

type orderJSON struct {
	ID           string        `json:"id"`
	OrderNumber  string        `json:"order_number"`
	CustomerName string        `json:"customer_name"`
	Status       kanban.Status `json:"status"`
	TotalAmount  float64       `json:"total_amount"`
	CreatedAt    time.Time     `json:"created_at"`
	Items        []struct {
		Quantity int `json:"quantity"`
	} `json:"items"`
}

// Cards fetches the board feed.
func (c *Client) Cards(ctx context.Context) ([]kanban.Card, error) {
	var resp struct {
		Orders []orderJSON `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders/board", nil, &resp); err != nil {
		return nil, err
	}

	cards := make([]kanban.Card, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		cards = append(cards, kanban.Card{
			ID:     o.ID,
			Status: o.Status,
			Payload: OrderSummary{
				OrderNumber:  o.OrderNumber,
				CustomerName: o.CustomerName,
				TotalAmount:  o.TotalAmount,
				ItemCount:    items,
				CreatedAt:    o.CreatedAt,
			},
		})
	}
	return cards, nil
}

// MoveCard asks the server to change the order status.
func (c *Client) MoveCard(ctx context.Context, cardID string, status kanban.Status) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(cardID)+"/status", body, nil)
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("login response has no token")
	}
	c.token = resp.AccessToken
	return c.token, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
