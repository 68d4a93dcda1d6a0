package indicators

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const userAgent = "Mozilla/5.0 (compatible; wealth-projector)"

// client issues GET requests and decodes JSON bodies.
type client struct {
	http    *fasthttp.Client
	timeout time.Duration
}

func newClient(timeout time.Duration) *client {
	return &client{
		http: &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		timeout: timeout,
	}
}

// getJSON honours the earlier of ctx's deadline and the client timeout.
func (c *client) getJSON(ctx context.Context, url string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrDataUnavailable, url, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", ErrDataUnavailable, url, code)
	}
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrDataUnavailable, url, err)
	}
	return nil
}
