package handlers

import (
	"net/http"

	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

// Reload triggers a manual reload of the places catalog
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("catalog reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "reload already in progress")
		}
	}
}
