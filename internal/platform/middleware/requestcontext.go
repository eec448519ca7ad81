// Package middleware adapts transport-level request metadata into the
// context values the services read.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"recscope/pkg/requestcontext"
)

// ActorHeader names the header the upstream auth layer uses to convey the
// acting identity. Auth itself lives outside this service; an empty header
// just produces unattributed audit events.
const ActorHeader = "X-Actor"

// RequestContext stamps the request time, request ID, and actor into the
// context so handlers and services share one consistent view per request.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		if actor := r.Header.Get(ActorHeader); actor != "" {
			ctx = requestcontext.WithActor(ctx, actor)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
