// Package starknet is a JSON-RPC client for Starknet nodes.
package starknet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/NethermindEth/rosettanet/utils"
)

const jsonrpcVersion = "2.0"

type Backoff func(wait time.Duration) time.Duration

type Client struct {
	url        string
	client     *http.Client
	backoff    Backoff
	maxRetries int
	maxWait    time.Duration
	minWait    time.Duration
	log        utils.SimpleLogger
	userAgent  string
	nextID     atomic.Uint64
}

func (c *Client) WithBackoff(b Backoff) *Client {
	c.backoff = b
	return c
}

func (c *Client) WithMaxRetries(num int) *Client {
	c.maxRetries = num
	return c
}

func (c *Client) WithMaxWait(d time.Duration) *Client {
	c.maxWait = d
	return c
}

func (c *Client) WithMinWait(d time.Duration) *Client {
	c.minWait = d
	return c
}

func (c *Client) WithLogger(log utils.SimpleLogger) *Client {
	c.log = log
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

func (c *Client) WithTimeout(t time.Duration) *Client {
	c.client = &http.Client{Timeout: t}
	return c
}

func ExponentialBackoff(wait time.Duration) time.Duration {
	return wait * 2
}

func NopBackoff(d time.Duration) time.Duration {
	return 0
}

func NewClient(clientURL string) *Client {
	registerMetrics()
	return &Client{
		url:        strings.TrimSuffix(clientURL, "/"),
		client:     &http.Client{Timeout: 30 * time.Second},
		backoff:    ExponentialBackoff,
		maxRetries: 5,
		maxWait:    4 * time.Second,
		minWait:    250 * time.Millisecond,
		log:        utils.NewNopZapLogger(),
	}
}

type request struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      uint64 `json:"id"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      any             `json:"id"`
}

// Call invokes method with params and decodes the result into result. Errors
// returned by the node are *Error values; only transport failures and 429/5xx
// responses are retried.
func (c *Client) Call(ctx context.Context, method string, params, result any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{
		Version: jsonrpcVersion,
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return err
	}

	raw, err := c.post(ctx, method, body)
	if err != nil {
		requestFailures.WithLabelValues(method).Inc()
		return err
	}

	var res response
	if err = json.Unmarshal(raw, &res); err != nil {
		requestFailures.WithLabelValues(method).Inc()
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if res.Error != nil {
		requestFailures.WithLabelValues(method).Inc()
		return res.Error
	}
	if result == nil {
		return nil
	}
	if len(res.Result) == 0 {
		return fmt.Errorf("%s response has neither result nor error", method)
	}
	if err = json.Unmarshal(res.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// post sends body and returns the response body, retrying with backoff
func (c *Client) post(ctx context.Context, method string, body []byte) ([]byte, error) {
	var err error
	wait := time.Duration(0)
	for range c.maxRetries + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
			requests.WithLabelValues(method).Inc()

			var raw []byte
			var retry bool
			raw, retry, err = c.do(ctx, body)
			if err == nil {
				return raw, nil
			}
			if !retry {
				return nil, err
			}

			if wait < c.minWait {
				wait = c.minWait
			} else {
				wait = min(c.backoff(wait), c.maxWait)
			}

			c.log.Debugw("Failed query to starknet node, retrying...",
				"method", method, "retryAfter", wait.String(), "err", err)
		}
	}
	return nil, err
}

// do performs one request and reports whether a failure is worth retrying
func (c *Client) do(ctx context.Context, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, !errors.Is(err, context.Canceled), err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, true, err
	}
	if res.StatusCode != http.StatusOK {
		retry := res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError
		if res.StatusCode == http.StatusBadRequest && len(raw) > 0 {
			// some nodes answer malformed requests with a JSON-RPC error and a 400
			return raw, false, nil
		}
		return nil, retry, errors.New(res.Status)
	}
	return raw, false, nil
}
