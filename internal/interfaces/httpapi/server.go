package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
)

// NewRouter serves the health probe and the token-guarded internal routes.
func NewRouter(handler *Handler, internalJobToken string, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	internal := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}
	mux.Handle("POST /v1/internal/jobs/score-prematch", internal(handler.RunPreMatchJob))
	mux.Handle("POST /v1/internal/jobs/score-live", internal(handler.RunLiveJob))
	mux.Handle("POST /v1/internal/teams/resolve", internal(handler.ResolveTeam))
	mux.Handle("GET /v1/internal/fixtures/{fixtureID}/external-ids/{providerID}", internal(handler.GetExternalID))

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
