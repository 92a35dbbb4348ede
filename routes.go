package main

import (
	"net/http"

	"repairwip/loader"
	"repairwip/wipstatus"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, builder wipstatus.ReportBuilder, logger *zap.Logger) {
	mux.HandleFunc("/api/wip/status", wipstatus.StatusReportHandler(builder, logger))
	mux.HandleFunc("/api/wip/status/summary", wipstatus.StatusSummaryHandler(builder, logger))
	mux.HandleFunc("/api/wip/statuses", wipstatus.StatusListHandler(logger))
	mux.HandleFunc("/api/mirror/load", loader.UploadCSVHandler(dbConn, logger))
	mux.HandleFunc("/api/config", GetConfigHandler())
}
