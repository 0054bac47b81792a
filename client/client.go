// Package client talks to the compute service and validates everything it
// sends back before it reaches playback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/chibuka/algoviz/internal/config"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

const (
	sortPath  = "/api/sort/bubble"
	primePath = "/api/prime/check"

	maxResponseBytes = 32 << 20
)

type Client struct {
	baseURL       string
	http          *http.Client
	logger        *zap.Logger
	responseLimit int64
}

// New builds a client from the saved configuration.
func New(cfg *config.Config, logger *zap.Logger) *Client {
	return NewWithHTTP(cfg.GetAPIURL(), &http.Client{Timeout: cfg.RequestTimeout()}, logger)
}

// NewWithHTTP builds a client against baseURL using hc.
func NewWithHTTP(baseURL string, hc *http.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: baseURL, http: hc, logger: logger, responseLimit: maxResponseBytes}
}

// BaseURL returns the compute service address.
func (c *Client) BaseURL() string { return c.baseURL }

// BubbleSort asks the compute service for the bubble sort trace of input.
func (c *Client) BubbleSort(ctx context.Context, input []int) (*steps.SortResult, error) {
	if input == nil {
		input = []int{}
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sort request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sortPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result steps.SortResult
	if err := decode(body, sortSchema, &result); err != nil {
		return nil, err
	}
	if err := steps.ValidateSortSteps(result.Steps); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if first := result.Steps[0].Array; !slices.Equal(first, input) {
		return nil, fmt.Errorf("%w: trace starts from %v, sent %v", ErrMalformedResponse, first, input)
	}

	c.logger.Debug("sort trace received", zap.Int("steps", len(result.Steps)), zap.Int64("time_taken_ms", result.TimeTakenMs))
	return &result, nil
}

// CheckPrime asks the compute service for the trial-division trace of n.
func (c *Client) CheckPrime(ctx context.Context, n int64) (*steps.PrimeResult, error) {
	q := url.Values{"n": {strconv.FormatInt(n, 10)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+primePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result steps.PrimeResult
	if err := decode(body, primeSchema, &result); err != nil {
		return nil, err
	}
	if result.Number != n {
		return nil, fmt.Errorf("%w: asked about %d, answer is about %d", ErrMalformedResponse, n, result.Number)
	}
	if err := steps.ValidatePrimeResult(result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	c.logger.Debug("prime trace received", zap.Int64("n", n), zap.Bool("prime", result.IsPrime), zap.Int("steps", len(result.Steps)))
	return &result, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.logger.Debug("calling compute service", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	res, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = res.Body.Close() }()

	// One byte past the limit tells a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(res.Body, c.responseLimit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrUnreachable, err)
	}
	if int64(len(body)) > c.responseLimit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.responseLimit)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, statusError(res.StatusCode, body)
	}
	return body, nil
}

func statusError(status int, body []byte) error {
	var problem struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if json.Unmarshal(body, &problem) == nil {
		detail = problem.Detail
	}
	if detail == "" {
		detail = string(bytes.TrimSpace(body))
	}
	return &StatusError{Status: status, Detail: detail}
}

// decode checks body against schema before unmarshalling it into out.
func decode(body []byte, schema *jsonschema.Schema, out any) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
