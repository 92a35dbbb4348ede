package wipstatus

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"repairwip/model"
	"repairwip/status"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportBuilder builds one status report per request.
type ReportBuilder interface {
	Build(ctx context.Context, req model.ReportRequest) (model.StatusReport, error)
}

// SummaryResponse is the report without per-unit data.
type SummaryResponse struct {
	TotalCount   int                 `json:"totalCount"`
	StatusCounts []model.StatusCount `json:"statusCounts"`
}

// StatusListResponse lists the labels a report can contain.
type StatusListResponse struct {
	Statuses []string `json:"statuses"`
}

// StatusReportHandler serves the full report, optionally filtered by the
// repeated or comma separated "status" query parameter.
func StatusReportHandler(builder ReportBuilder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := buildReport(w, r, builder, logger)
		if !ok {
			return
		}
		writeJSON(w, logger, report)
	}
}

// StatusSummaryHandler serves only the status counts.
func StatusSummaryHandler(builder ReportBuilder, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := buildReport(w, r, builder, logger)
		if !ok {
			return
		}
		writeJSON(w, logger, SummaryResponse{
			TotalCount:   report.TotalCount,
			StatusCounts: report.StatusCounts,
		})
	}
}

// StatusListHandler serves every label a report can contain.
func StatusListHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, logger, StatusListResponse{Statuses: status.Labels()})
	}
}

func buildReport(w http.ResponseWriter, r *http.Request, builder ReportBuilder, logger *zap.Logger) (model.StatusReport, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return model.StatusReport{}, false
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := logger.With(zap.String("requestId", requestID))

	req := ParseRequest(r)
	report, err := builder.Build(r.Context(), req)
	if err != nil {
		log.Error("Failed to build WIP status report", zap.Error(err))
		http.Error(w, "Failed to build WIP status report: "+err.Error(), http.StatusInternalServerError)
		return model.StatusReport{}, false
	}
	log.Info("Built WIP status report",
		zap.Strings("statuses", req.Statuses),
		zap.Int("totalCount", report.TotalCount),
		zap.Int("count", report.Count))
	return report, true
}

// ParseRequest reads the report filters from the query string.
func ParseRequest(r *http.Request) model.ReportRequest {
	q := r.URL.Query()
	var statuses []string
	for _, v := range q["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}
	return model.ReportRequest{
		Filters: model.UnitFilters{
			ProductLine: strings.TrimSpace(q.Get("productLine")),
			Model:       strings.TrimSpace(q.Get("model")),
			MoPrefix:    strings.TrimSpace(q.Get("moPrefix")),
		},
		Statuses: statuses,
	}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
