package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetSendsDefaultHeadersAndQuery(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, http.Header{"Content-Type": {"application/json"}}, []byte(`{"page":2}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL + "/api/", Headers: map[string]string{"x-api-key": "reqres-free-v1"}})

		resp, err := c.Get(context.Background(), "/users", WithQuery("page", "2"))

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode())
		assert.JSONEq(t, `{"page":2}`, resp.String())
		r := <-requests
		assert.Equal(t, "/api/users", r.Request.URL.Path)
		assert.Equal(t, "2", r.Request.URL.Query().Get("page"))
		assert.Equal(t, "reqres-free-v1", r.Request.Header.Get("x-api-key"))
	})
}

func TestPostSendsJSON(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL})

		resp, err := c.Post(context.Background(), "/users", map[string]string{"name": "morpheus"})

		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode())
		r := <-requests
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name":"morpheus"}`, string(r.Body))
	})
}

func TestClientErrorsAreReturnedNotRetried(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL, RetryCount: 3, RetryDelay: time.Millisecond})

		resp, err := c.Delete(context.Background(), "/users/23")

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode())
		assert.Len(t, requests, 1)
	})
}

func TestServerErrorsAreRetried(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(503),
		httphelpers.HandlerWithStatus(429),
		httphelpers.HandlerWithStatus(200),
	))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL, RetryCount: 3, RetryDelay: time.Millisecond})

		resp, err := c.Put(context.Background(), "/users/2", map[string]string{"job": "zion resident"})

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode())
		assert.Len(t, requests, 3)
	})
}

func TestResponsesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	httphelpers.WithServer(httphelpers.HandlerWithStatus(204), func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL, Logger: zap.New(core)})
		_, err := c.Patch(context.Background(), "/users/2", map[string]string{})
		require.NoError(t, err)
	})

	entries := logs.FilterMessage("Response").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PATCH", fields["method"])
	assert.Equal(t, int64(204), fields["status"])
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, shouldRetry(nil, assert.AnError))
	assert.False(t, shouldRetry(nil, nil))
	assert.False(t, shouldRetry(nil, context.Canceled))
	assert.False(t, shouldRetry(nil, fmt.Errorf("get: %w", context.DeadlineExceeded)))
}

func TestCancelledRequestIsNotRetried(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(503))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(Options{BaseURL: server.URL, RetryCount: 3, RetryDelay: 50 * time.Millisecond})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Get(ctx, "/users")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Len(t, requests, 0)
	})
}
