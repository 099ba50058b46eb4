package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/kirillkom/pitchdeck-parser/internal/core/domain"
	"github.com/kirillkom/pitchdeck-parser/internal/infrastructure/resilience"
)

// Client downloads remote files into memory, bounded by MaxBytes.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	MaxBytes           int64
	ResilienceExecutor *resilience.Executor
}

func New(options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 50 << 20
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		executor:   options.ResilienceExecutor,
	}
}

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var payload []byte
	call := func(ctx context.Context) error {
		data, err := c.fetchOnce(ctx, url)
		if err != nil {
			return err
		}
		payload = data
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "fetch.download", call, classifyFetchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteFetch, "download "+url, err)
	}
	return payload, nil
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, url: url}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", c.maxBytes)
	}
	return data, nil
}

type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.code, e.url)
}

func classifyFetchError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		retryable := statusErr.code >= 500 || statusErr.code == http.StatusTooManyRequests
		return resilience.ErrorClassification{
			Retryable:     retryable,
			RecordFailure: retryable,
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}
