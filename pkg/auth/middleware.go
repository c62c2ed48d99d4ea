package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/GlebRadaev/playlives/pkg/utils"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecretMiddleware admits requests carrying the shared secret. With an empty secret
// every request is refused.
func WebhookSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(WebhookSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
