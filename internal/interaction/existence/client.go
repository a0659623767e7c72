package existence

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// maxDrainBytes bounds how much of a response body is read before closing so
// the connection can be reused without trusting the upstream's body size.
const maxDrainBytes = 4 << 10

// HTTPChecker performs existence checks with a shared *http.Client.
type HTTPChecker struct {
	client *http.Client
}

// NewHTTPChecker wraps client, which is owned by the caller and shared across
// requests. Timeouts come from the context passed to Check.
func NewHTTPChecker(client *http.Client) *HTTPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPChecker{client: client}
}

// Check issues GET {baseAddress}/{id} exactly once.
//
//   - 2xx yields Found.
//   - 404 and other 4xx yield NotFound.
//   - 5xx, transport failures, timeouts and cancellation yield Unreachable with a *CheckError.
func (c *HTTPChecker) Check(ctx context.Context, baseAddress string, id int64) (Outcome, error) {
	url := strings.TrimRight(baseAddress, "/") + "/" + strconv.FormatInt(id, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Unreachable, &CheckError{Category: CategoryInternal, URL: url, Underlying: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Unreachable, &CheckError{Category: transportCategory(ctx, err), URL: url, Underlying: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Found, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return NotFound, nil
	case resp.StatusCode >= 500:
		return Unreachable, &CheckError{Category: CategoryOutage, URL: url, StatusCode: resp.StatusCode}
	default:
		return Unreachable, &CheckError{Category: CategoryBadStatus, URL: url, StatusCode: resp.StatusCode}
	}
}

func transportCategory(ctx context.Context, err error) Category {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}
	return CategoryOutage
}
