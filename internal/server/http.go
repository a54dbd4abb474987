package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter routes the player endpoint and the health check
func NewRouter(ws *WSHandler, loop *Loop, logger zerolog.Logger) *mux.Router {
	logger = logger.With().Str("component", "HTTP").Logger()

	r := mux.NewRouter()
	r.Handle("/ws", ws).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthHandler(loop)).Methods(http.MethodGet)
	r.Use(requestLogger(logger))
	return r
}

type healthResponse struct {
	Status    string `json:"status"`
	MatchID   string `json:"match_id,omitempty"`
	Phase     string `json:"phase,omitempty"`
	GamePhase string `json:"game_phase,omitempty"`
	Seated    int    `json:"seated"`
}

func healthHandler(loop *Loop) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		snap, err := loop.Snapshot(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(healthResponse{Status: "unavailable"})
			return
		}

		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:    "ok",
			MatchID:   snap.MatchID,
			Phase:     snap.Phase.String(),
			GamePhase: snap.GamePhase.String(),
			Seated:    snap.Seated,
		})
	}
}

// requestLogger logs each request once it is done. It does not wrap the
// ResponseWriter, so WebSocket upgrades keep working.
func requestLogger(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}
