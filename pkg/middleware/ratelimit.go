package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chris/money-movements/pkg/auth"
	"github.com/go-chi/httprate"
)

// AuthRateLimit limits sign-in and sign-up attempts per client IP. Rejected requests get
// the too-many-requests auth error.
func AuthRateLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error": auth.Message(auth.ErrTooManyRequests),
				"code":  auth.CodeTooManyRequests,
			})
		}),
	)
}
