package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/logging"
	"github.com/energyops/assetbot/internal/version"
)

// StatsSource provides interaction counters. *bot.Bot implements it.
type StatsSource interface {
	Stats() bot.Stats
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Full    string `json:"full"`
}

// NewRouter builds the ops routes.
func NewRouter(stats StatsSource, started time.Time) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, healthResponse{
			Status: "ok",
			Uptime: time.Since(started).Truncate(time.Second).String(),
		})
	}).Methods("GET")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, versionResponse{
			Version: version.Version,
			Commit:  version.Commit,
			Full:    version.Full(),
		})
	}).Methods("GET")
	r.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, stats.Stats())
	}).Methods("GET")
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to write response", zap.Error(err))
	}
}
