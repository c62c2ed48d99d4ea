package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookSecretMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		secret       string
		header       string
		expectedCode int
	}{
		{"Matching secret", "s3cret", "s3cret", http.StatusOK},
		{"Wrong secret", "s3cret", "guess", http.StatusUnauthorized},
		{"Missing header", "s3cret", "", http.StatusUnauthorized},
		{"Secret not configured", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", nil)
			if tt.header != "" {
				req.Header.Set(WebhookSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()

			WebhookSecretMiddleware(tt.secret)(ok).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
