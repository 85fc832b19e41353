package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fastfood-uz/pos/internal/service/models/order"
)

// TransientError marks a failure the display treats as temporary: the
// network hiccuped or the server answered with a 5xx. Callers keep their
// last good snapshot and retry on the next poll.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient api error: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// APIClient talks to the order service HTTP API on behalf of a display
// terminal.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	terminalID string
}

// NewAPIClient creates a new APIClient for the given base URL, for
// example "http://pos:3000".
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		terminalID: uuid.New().String(),
	}
}

// TerminalID returns the per-process display instance id.
func (c *APIClient) TerminalID() string {
	return c.terminalID
}

// ListOrders fetches orders filtered by status and branch.
func (c *APIClient) ListOrders(ctx context.Context, statuses []order.Status, branchID int64) ([]order.Order, error) {
	query := url.Values{}
	for _, status := range statuses {
		query.Add("status", status.String())
	}
	if branchID > 0 {
		query.Set("branchId", strconv.FormatInt(branchID, 10))
	}

	endpoint := c.baseURL + "/api/v1/orders"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Terminal-Id", c.terminalID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &TransientError{Err: fmt.Errorf("server returned %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing orders", resp.StatusCode)
	}

	var orders []order.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, &TransientError{Err: err}
	}

	return orders, nil
}

// UpdateStatus moves an order to the next status, guarded by the status
// the terminal last saw.
func (c *APIClient) UpdateStatus(ctx context.Context, id int64, expected, next order.Status) (order.Order, error) {
	body, err := json.Marshal(map[string]string{
		"status":         next.String(),
		"expectedStatus": expected.String(),
	})
	if err != nil {
		return order.Order{}, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/orders/%d/status", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return order.Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Terminal-Id", c.terminalID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return order.Order{}, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return order.Order{}, order.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return order.Order{}, order.ErrInvalidTransition
	case resp.StatusCode >= http.StatusInternalServerError:
		return order.Order{}, &TransientError{Err: fmt.Errorf("server returned %d", resp.StatusCode)}
	default:
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return order.Order{}, fmt.Errorf("unexpected status %d updating order: %s", resp.StatusCode, message)
	}

	var updated order.Order
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return order.Order{}, &TransientError{Err: err}
	}

	return updated, nil
}
