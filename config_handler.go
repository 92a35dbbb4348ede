package main

import (
	"encoding/json"
	"net/http"

	"repairwip/config"
)

// configView is the active configuration without the connection string.
type configView struct {
	DBDriver         string `json:"dbDriver"`
	ListenAddr       string `json:"listenAddr"`
	FetchChunkSize   int    `json:"fetchChunkSize"`
	FetchParallelism int    `json:"fetchParallelism"`
	SummarySchedule  string `json:"summarySchedule"`
	LogLevel         string `json:"logLevel"`
}

// GetConfigHandler returns the active configuration.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cfg := config.GetConfig()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(configView{
			DBDriver:         cfg.DBDriver,
			ListenAddr:       cfg.ListenAddr,
			FetchChunkSize:   cfg.FetchChunkSize,
			FetchParallelism: cfg.FetchParallelism,
			SummarySchedule:  cfg.SummarySchedule,
			LogLevel:         cfg.LogLevel,
		})
	}
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
