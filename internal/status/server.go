// Package status serves the client's health, feed and notification history over HTTP.
package status

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rickgao/tweetstream/internal/connection"
	"github.com/rickgao/tweetstream/internal/render"
)

// Sources bundles everything the status endpoints read from.
type Sources struct {
	Manager       interface{ Stats() connection.ManagerStats }
	Feed          *render.Feed
	Notifications interface {
		History() []connection.Notification
	}
	Metrics http.Handler // optional
	Version string
}

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Session    string `json:"session"`
	State      string `json:"state"`
	Attempt    int    `json:"attempt"`
	Dials      int64  `json:"dials"`
	Reconnects int64  `json:"reconnects"`
	Events     int64  `json:"events"`
}

type notificationJSON struct {
	Severity connection.Severity `json:"severity"`
	Message  string              `json:"message"`
	Attempt  int                 `json:"attempt,omitempty"`
	At       string              `json:"at"`
}

// NewHandler creates the HTTP handler for the status endpoints.
func NewHandler(src Sources, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := src.Manager.Stats()

		health := healthResponse{
			Status:     "healthy",
			Version:    src.Version,
			Session:    stats.SessionID,
			State:      stats.State.String(),
			Attempt:    stats.Attempt,
			Dials:      stats.Dials,
			Reconnects: stats.Reconnects,
			Events:     stats.Events,
		}

		code := http.StatusOK
		switch stats.State {
		case connection.StateOpen:
		case connection.StateTerminal:
			health.Status = "unhealthy"
			code = http.StatusServiceUnavailable
		default:
			health.Status = "degraded"
		}

		writeJSON(w, code, health, logger)
	})

	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		panels := src.Feed.Panels()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":  len(panels),
			"total":  src.Feed.Total(),
			"panels": panels,
		}, logger)
	})

	mux.HandleFunc("/notifications", func(w http.ResponseWriter, r *http.Request) {
		history := src.Notifications.History()
		out := make([]notificationJSON, 0, len(history))
		for _, n := range history {
			out = append(out, notificationJSON{
				Severity: n.Severity,
				Message:  n.Message,
				Attempt:  n.Attempt,
				At:       n.At.UTC().Format(time.RFC3339),
			})
		}
		writeJSON(w, http.StatusOK, out, logger)
	})

	if src.Metrics != nil {
		mux.Handle("/metrics", src.Metrics)
	}

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode status response", "error", err)
	}
}
