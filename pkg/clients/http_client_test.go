package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fastRetries() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestHTTPClient_GetRetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("X-Test", "ok")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(fastRetries())
	status, body, headers, err := client.Get(context.Background(), srv.URL, http.Header{"Authorization": {"Bearer key"}})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "ok", headers.Get("X-Test"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_GetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	status, _, _, err := NewHTTPClient(fastRetries()).Get(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_GetReturnsLastStatusWhenRetriesRunOut(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	status, _, _, err := NewHTTPClient(fastRetries()).Get(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_GetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, _, _, err := NewHTTPClient(fastRetries()).Get(context.Background(), url, nil)
	assert.Error(t, err)
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   bool
	}{
		{"transport error", 0, errors.New("connection reset"), true},
		{"canceled", 0, context.Canceled, false},
		{"rate limited", http.StatusTooManyRequests, nil, true},
		{"unavailable", http.StatusServiceUnavailable, nil, true},
		{"ok", http.StatusOK, nil, false},
		{"not found", http.StatusNotFound, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.status, tt.err))
		})
	}
}

func TestHTTPClient_SetClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockHTTPClientI(ctrl)
	mock.EXPECT().Get(gomock.Any(), "http://example", gomock.Nil()).Return(http.StatusOK, []byte("x"), nil, nil)

	client := NewHTTPClient(DefaultRetryConfig())
	client.SetClient(mock)

	status, body, _, err := client.Get(context.Background(), "http://example", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []byte("x"), body)
}
