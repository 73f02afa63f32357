package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"homenest/internal/domain"
)

type ctxKey int

const callerKey ctxKey = iota

// CallerEmail returns the verified identity attached by RequireAuth.
func CallerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(callerKey).(string)
	return email, ok
}

// RequireAuth rejects requests without a valid bearer credential and
// attaches the verified email to the request context. Verification is
// delegated per request; results are never cached across requests.
func RequireAuth(v domain.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			id, err := v.Verify(r.Context(), token)
			if err != nil {
				msg := "unauthorized access"
				if errors.Is(err, domain.ErrTokenInvalid) {
					// carry the provider's rejection detail
					msg = err.Error()
				}
				writeMessage(w, http.StatusUnauthorized, msg)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, id.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
