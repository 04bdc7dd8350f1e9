package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/ecoleta/internal/domain"
	"github.com/vbonduro/ecoleta/internal/service"
)

// ErrNotFound is returned when the API answers 404 for an item or point.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer other than 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// Query is the filter sent with ListPoints. Empty fields are omitted.
type Query struct {
	Region string
	City   string
	Items  []int64
}

// Values encodes q as the listPoints query string parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.Region != "" {
		v.Set("uf", q.Region)
	}
	if len(q.Items) > 0 {
		v.Set("items", domain.FormatItemIDs(q.Items))
	}
	return v
}

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListItems(ctx context.Context) ([]service.ItemView, error) {
	var items []service.ItemView
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (*service.ItemView, error) {
	var item service.ItemView
	if err := c.do(ctx, http.MethodGet, "/items/"+strconv.FormatInt(id, 10), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) ListPoints(ctx context.Context, q Query) ([]*domain.Point, error) {
	path := "/points"
	if enc := q.Values().Encode(); enc != "" {
		path += "?" + enc
	}

	var points []*domain.Point
	if err := c.do(ctx, http.MethodGet, path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) GetPoint(ctx context.Context, id int64) (*service.PointDetail, error) {
	var detail service.PointDetail
	if err := c.do(ctx, http.MethodGet, "/points/"+strconv.FormatInt(id, 10), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreatePoint(ctx context.Context, req service.PointRequest) (*service.Registration, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var reg service.Registration
	if err := c.do(ctx, http.MethodPost, "/points", payload, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, target any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
