package rostersim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Breaker thresholds.
const (
	breakerFailures = 5
	breakerTimeout  = 5 * time.Second
)

// errStatus carries an unexpected HTTP status.
type errStatus struct {
	code int
	body string
}

func (e *errStatus) Error() string { return fmt.Sprintf("status %d: %s", e.code, e.body) }

// client is a paced HTTP client behind a circuit breaker. Server errors
// count towards the breaker; client errors do not.
type client struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newClient(cfg Config) *client {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	st := gobreaker.Settings{
		Name:    "teamforge",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			var se *errStatus
			return err == nil || (errors.As(err, &se) && se.code < http.StatusInternalServerError)
		},
	}
	return &client{
		http:    &http.Client{Timeout: cfg.Timeout},
		base:    cfg.BaseURL,
		limiter: rate.NewLimiter(limit, max(1, int(cfg.RPS))),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// do sends one request and decodes a JSON response into out when the
// status is one of want.
func (c *client) do(ctx context.Context, method, path string, body, out any, want ...int) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		var rd io.Reader = http.NoBody
		if body != nil {
			raw, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request body: %w", err)
			}
			rd = bytes.NewReader(raw)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		for _, code := range want {
			if resp.StatusCode == code {
				if out != nil {
					if err := json.Unmarshal(raw, out); err != nil {
						return resp.StatusCode, fmt.Errorf("decode response: %w", err)
					}
				}
				return resp.StatusCode, nil
			}
		}
		return resp.StatusCode, &errStatus{code: resp.StatusCode, body: string(bytes.TrimSpace(raw))}
	})
	code, _ := res.(int)
	return code, err
}
