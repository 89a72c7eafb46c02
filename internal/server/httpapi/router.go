// Package httpapi exposes the development server's HTTP surface: the same
// PHP-era paths the production forum serves, so the mobile client works
// against either unchanged.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nexabag/deltamobile/internal/logging"
	"github.com/nexabag/deltamobile/internal/server/qrtoken"
	"github.com/nexabag/deltamobile/internal/server/store"
)

// NewRouter mounts the wire contract endpoints plus a dev-only token mint.
func NewRouter(st store.Store, qr *qrtoken.Issuer, version string, log logging.Logger) http.Handler {
	h := &Handler{store: st, qr: qr, version: version, log: log}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestID(log))

	r.Post("/auth.php", h.handleAuth)
	r.Post("/qr_verify.php", h.handleQRVerify)
	r.Get("/labs.json", h.handleLabs)
	r.Get("/package.json", h.handlePackage)
	r.Get("/messages.php", h.handleMessages)

	// dev helper, not part of the production surface
	r.Post("/qr_issue.php", h.handleQRIssue)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// requestID tags every request with a uuid, echoes it in the response, and
// logs the request once served.
func requestID(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)

			start := time.Now()
			next.ServeHTTP(w, r)

			log.Debug(r.Context(), "request served",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).String(),
			)
		})
	}
}
