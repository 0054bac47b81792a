package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chibuka/algoviz/internal/config"
	"github.com/chibuka/algoviz/internal/service"
	"github.com/chibuka/algoviz/internal/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceClient(t *testing.T) *Client {
	t.Helper()
	return newServiceClientWithMax(t, 1_000_000)
}

func newServiceClientWithMax(t *testing.T, maxPrime int64) *Client {
	t.Helper()
	srv := service.New(service.Options{
		MaxArrayLen:    20,
		MaxPrime:       maxPrime,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewWithHTTP(ts.URL, ts.Client(), nil)
}

func newStubClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return NewWithHTTP(ts.URL, ts.Client(), nil)
}

func TestBubbleSortAgainstService(t *testing.T) {
	c := newServiceClient(t)

	res, err := c.BubbleSort(context.Background(), []int{5, 2, 9, 1})
	require.NoError(t, err)
	require.Len(t, res.Steps, 17)
	assert.Equal(t, []int{5, 2, 9, 1}, res.Steps[0].Array)
	assert.Equal(t, []int{1, 2, 5, 9}, res.Steps[16].Array)
	assert.Equal(t, steps.AlgorithmBubbleSort, res.Algorithm)
}

func TestBubbleSortEmptyInput(t *testing.T) {
	c := newServiceClient(t)

	res, err := c.BubbleSort(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Steps, 2)
	assert.Empty(t, res.Steps[0].Array)
}

func TestCheckPrimeAgainstService(t *testing.T) {
	c := newServiceClient(t)

	res, err := c.CheckPrime(context.Background(), 29)
	require.NoError(t, err)
	assert.True(t, res.IsPrime)
	assert.Len(t, res.Steps, 4)

	res, err = c.CheckPrime(context.Background(), 35)
	require.NoError(t, err)
	assert.False(t, res.IsPrime)
	d, ok := res.MatchedDivisor()
	require.True(t, ok)
	assert.EqualValues(t, 5, d)
}

func TestServiceRejectionCarriesDetail(t *testing.T) {
	c := newServiceClient(t)

	_, err := c.CheckPrime(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceStatus)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.NotEmpty(t, statusErr.Detail)
	assert.Contains(t, FormatError(err), "rejected the input")
}

func TestUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewWithHTTP(url, &http.Client{Timeout: time.Second}, nil)
	_, err := c.BubbleSort(context.Background(), []int{3, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, FormatError(err), "not reachable")
}

func TestCanceledContextIsNotUnreachable(t *testing.T) {
	c := newServiceClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CheckPrime(ctx, 29)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnreachable)
}

func TestMalformedSortResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing steps", `{"algorithm":"Bubble Sort"}`},
		{"empty steps", `{"steps":[]}`},
		{"wrong field type", `{"steps":[{"array":"1,2","comparing":[],"swapping":false,"sorted":[],"description":""}]}`},
		{"missing field", `{"steps":[{"array":[1,2],"comparing":[],"sorted":[0,1],"description":""}]}`},
		{"non adjacent compare", `{"steps":[
			{"array":[2,1],"comparing":[0,2],"swapping":false,"sorted":[],"description":""},
			{"array":[2,1],"comparing":[],"swapping":false,"sorted":[0,1],"description":""}]}`},
		{"not finished", `{"steps":[{"array":[2,1],"comparing":[],"swapping":false,"sorted":[],"description":""}]}`},
		{"different input", `{"steps":[{"array":[7,8],"comparing":[],"swapping":false,"sorted":[0,1],"description":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, http.StatusOK, tt.body)
			_, err := c.BubbleSort(context.Background(), []int{2, 1})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestMalformedPrimeResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing verdict", `{"number":9,"steps":[],"timeTakenMs":0,"message":""}`},
		{"wrong number", `{"number":10,"isPrime":false,"steps":[{"divisor":2,"expression":"10 % 2","result":"0","isMatch":true,"status":""}],"timeTakenMs":0,"message":""}`},
		{"wrong match flag", `{"number":9,"isPrime":true,"steps":[{"divisor":2,"expression":"","result":"1","isMatch":false,"status":""},{"divisor":3,"expression":"","result":"0","isMatch":false,"status":""}],"timeTakenMs":0,"message":""}`},
		{"verdict disagrees", `{"number":9,"isPrime":true,"steps":[{"divisor":2,"expression":"","result":"1","isMatch":false,"status":""},{"divisor":3,"expression":"","result":"0","isMatch":true,"status":""}],"timeTakenMs":0,"message":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStubClient(t, http.StatusOK, tt.body)
			_, err := c.CheckPrime(context.Background(), 9)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestPlainTextErrorBody(t *testing.T) {
	c := newStubClient(t, http.StatusInternalServerError, "boom\n")

	_, err := c.CheckPrime(context.Background(), 9)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "boom", statusErr.Detail)
	assert.Equal(t, "The compute service failed: HTTP 500 - boom", FormatError(err))
}

func TestNewFromConfig(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	c := New(&config.Config{APIUrl: "http://example.test:9000/", RequestTimeoutMs: 250}, nil)
	assert.Equal(t, "http://example.test:9000", c.BaseURL())
	assert.Equal(t, 250*time.Millisecond, c.http.Timeout)
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError(&StatusError{Status: http.StatusTooManyRequests}), "rate limiting")
	assert.Contains(t, FormatError(ErrMalformedResponse), "could not be played back")
	assert.Equal(t, "plain", FormatError(errors.New("plain")))
}

func TestCheckPrimeAtConfiguredLimit(t *testing.T) {
	c := newServiceClientWithMax(t, config.MaxPrimeLimit)

	// Largest prime below 10^10: the longest trace the service will produce.
	res, err := c.CheckPrime(context.Background(), 9_999_999_967)
	require.NoError(t, err)
	assert.True(t, res.IsPrime)
	assert.Len(t, res.Steps, 99_998)

	_, err = c.CheckPrime(context.Background(), config.MaxPrimeLimit+1)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
}

func TestResponseTooLarge(t *testing.T) {
	c := newServiceClient(t)
	c.responseLimit = 256

	_, err := c.BubbleSort(context.Background(), []int{9, 8, 7, 6, 5, 4, 3, 2, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, FormatError(err), "too large")
}

func TestCheckPrimeNearInt64Limit(t *testing.T) {
	c := newStubClient(t, http.StatusOK, `{"number":9223372036854775806,"isPrime":false,"steps":[
		{"divisor":2,"expression":"9223372036854775806 % 2","result":"0","isMatch":true,"status":"Found divisor: not prime"}],
		"timeTakenMs":0,"message":"9223372036854775806 is not a prime number."}`)

	done := make(chan struct{})
	var (
		res *steps.PrimeResult
		err error
	)
	go func() {
		defer close(done)
		res, err = c.CheckPrime(context.Background(), math.MaxInt64-1)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("CheckPrime did not return")
	}
	require.NoError(t, err)
	assert.False(t, res.IsPrime)
}
