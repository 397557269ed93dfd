package middleware

import (
	"net/http"

	"medistock/internal/ports/capabilities"
)

// RequireFeature corta con 401 sin claims y 403 si el rol no tiene la feature.
func RequireFeature(resolver capabilities.CapabilitiesResolver, feature capabilities.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="medistock"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := resolver.HasFeature(r.Context(), capabilities.CapabilityCheck{
				UserID:  claims.UserID,
				Role:    claims.Role,
				Feature: feature,
			})
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
