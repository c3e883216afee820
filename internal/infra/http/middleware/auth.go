package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKey guards the admin surface with a static shared-secret header. It is
// deliberately the whole auth model for now; swapping in signed tokens means
// replacing this constructor, not touching any handler.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")

			if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
