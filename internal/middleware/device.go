package middleware

import (
	"net/http"

	"github.com/vorokhovskii-creator/felix-hub/internal/mobile"
)

// clientHints asks supporting browsers to report their viewport width.
const clientHints = "Sec-CH-Viewport-Width, Viewport-Width"

// Device detects the client device and stores it in the request context
// for the mobile document passes.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", clientHints)
		w.Header().Add("Vary", "User-Agent")
		w.Header().Add("Vary", clientHints)

		d := mobile.Detect(r)
		next.ServeHTTP(w, r.WithContext(mobile.NewContext(r.Context(), d)))
	})
}
