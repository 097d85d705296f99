package ethrpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"

	"github.com/status-im/token-price-resolver/interfaces"
)

const methodEthCall = "eth_call"

// StatusHandler receives request outcomes, typically a metrics writer
type StatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// Client sends batched eth_call requests with retries and rate limiting
type Client struct {
	rpc           *rpc.Client
	opts          Options
	limiter       *rate.Limiter
	statusHandler StatusHandler
}

// NewClient dials the JSON-RPC endpoint. For HTTP endpoints no connection is made
// until the first request.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	httpClient := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	client, err := rpc.DialOptions(ctx, opts.URL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", opts.URL, err)
	}

	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	if opts.LogPrefix == "" {
		opts.LogPrefix = "RPC"
	}

	return &Client{
		rpc:     client,
		opts:    opts,
		limiter: newLimiter(opts.RequestsPerSecond, opts.Burst),
	}, nil
}

// WithStatusHandler returns a client sharing the connection and rate limiter
// that reports request outcomes to handler
func (c *Client) WithStatusHandler(handler StatusHandler, logPrefix string) *Client {
	clone := *c
	clone.statusHandler = handler
	if logPrefix != "" {
		clone.opts.LogPrefix = logPrefix
	}
	return &clone
}

// Close closes the underlying connection
func (c *Client) Close() {
	c.rpc.Close()
}

// BatchCall implements interfaces.EthCaller
func (c *Client) BatchCall(ctx context.Context, calls []interfaces.EthCall) ([]interfaces.EthCallResult, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	outputs := make([]string, len(calls))
	batch := make([]rpc.BatchElem, len(calls))
	for i, call := range calls {
		batch[i] = rpc.BatchElem{
			Method: methodEthCall,
			Args:   []interface{}{call, "latest"},
			Result: &outputs[i],
		}
	}

	if err := c.executeWithRetries(ctx, batch); err != nil {
		return nil, &RPCError{Method: methodEthCall, Err: err}
	}

	results := make([]interfaces.EthCallResult, len(calls))
	for i, elem := range batch {
		if elem.Error != nil {
			results[i].Err = &RPCError{Method: methodEthCall, To: calls[i].To, Err: elem.Error}
			continue
		}
		results[i].Result = outputs[i]
	}
	return results, nil
}

// executeWithRetries sends the batch, retrying transport failures with backoff
func (c *Client) executeWithRetries(ctx context.Context, batch []rpc.BatchElem) error {
	var lastErr error

	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.opts.LogPrefix, attempt, c.opts.MaxRetries-1, lastErr)

			if c.statusHandler != nil {
				c.statusHandler.OnRetry()
			}

			backoffDuration := calculateBackoffWithJitter(c.opts.BaseBackoff, attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDuration):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				c.onRequest("error")
				return fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		requestStart := time.Now()
		err := c.rpc.BatchCallContext(ctx, batch)
		if err == nil {
			c.onRequest("success")
			return nil
		}

		lastErr = fmt.Errorf("request failed after %.2fs: %w", time.Since(requestStart).Seconds(), err)
		if ctx.Err() != nil {
			c.onRequest("canceled")
			return lastErr
		}

		var httpErr rpc.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
			c.onRequest("rate_limited")
		} else {
			c.onRequest("error")
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", c.opts.MaxRetries, lastErr)
}

func (c *Client) onRequest(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	if backoff/2 <= 0 {
		return backoff
	}
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}
