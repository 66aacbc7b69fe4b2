package handlers

import (
	"net/http"

	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports readiness: the service is ready when its store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RedisClient != nil {
			if err := d.RedisClient.Ping(r.Context()).Err(); err != nil {
				d.Logger.Warn("readiness check failed", logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
				return
			}
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
