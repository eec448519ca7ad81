// Package httpapi assembles the public router. It is the only place that
// knows the full route surface; handlers register themselves per feature.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assessmenthandler "recscope/internal/assessment/handler"
	"recscope/internal/platform/middleware"
	"recscope/pkg/platform/httputil"
)

// NewRouter wires all public endpoints plus the operational surface.
func NewRouter(assessments *assessmenthandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestContext)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	assessments.Register(r)
	return r
}
