// Package catalog reads the product list from the product service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	dErrors "recom/pkg/domain-errors"
)

// maxBodyBytes caps the product list accepted from the product service.
const maxBodyBytes = 8 << 20

// Product mirrors the product service's wire representation.
type Product struct {
	ID       int64           `json:"productId"`
	Name     string          `json:"productName"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Client fetches GET {baseAddress} with a shared *http.Client.
type Client struct {
	client      *http.Client
	baseAddress string
}

func NewClient(client *http.Client, baseAddress string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, baseAddress: baseAddress}
}

// Products returns the full catalog. Any transport failure, non-2xx status or
// undecodable body is reported as CodeUnavailable.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAddress, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid product service address")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "product service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, dErrors.Wrap(fmt.Errorf("GET %s: status %d", c.baseAddress, resp.StatusCode),
			dErrors.CodeUnavailable, "product service unavailable")
	}

	var products []Product
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&products); err != nil {
		return nil, dErrors.Wrap(fmt.Errorf("decode product list: %w", err), dErrors.CodeUnavailable, "product service unavailable")
	}
	return products, nil
}
