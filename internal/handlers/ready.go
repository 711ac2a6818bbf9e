package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/crucial707/account-api/internal/response"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ready returns a readiness probe that pings the database with a short timeout.
func Ready(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			slog.WarnContext(r.Context(), "readiness check failed", "error", err)
			response.Error(w, http.StatusServiceUnavailable, MsgDatabaseUnhealthy)
			return
		}
		response.Message(w, http.StatusOK, MsgReady)
	}
}
