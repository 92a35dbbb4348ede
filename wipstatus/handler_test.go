package wipstatus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repairwip/aggregation"
	"repairwip/model"
	"repairwip/status"
)

type stubBuilder struct {
	records []model.UnitRecord
	err     error
	got     model.ReportRequest
}

func (s *stubBuilder) Build(ctx context.Context, req model.ReportRequest) (model.StatusReport, error) {
	s.got = req
	if s.err != nil {
		return model.StatusReport{}, s.err
	}
	return aggregation.Aggregate(s.records, req.Statuses), nil
}

func newStub() *stubBuilder {
	return &stubBuilder{records: []model.UnitRecord{
		{Serial: "S1", Status: status.Of(status.ReworkFG)},
		{Serial: "S2", Status: status.Aging(status.WaitingRepair, status.Over30)},
	}}
}

func TestStatusReportHandler(t *testing.T) {
	stub := newStub()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wip/status?status=ReworkFG&productLine=PL1&moPrefix=4", nil)

	StatusReportHandler(stub, zap.NewNop())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, model.UnitFilters{ProductLine: "PL1", MoPrefix: "4"}, stub.got.Filters)

	var body struct {
		TotalCount   int                 `json:"totalCount"`
		StatusCounts []model.StatusCount `json:"statusCounts"`
		Count        int                 `json:"count"`
		Data         []struct {
			Serial string `json:"serialNumber"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ReworkFG", body.Data[0].Status)
	assert.Len(t, body.StatusCounts, 2)
}

func TestStatusSummaryHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	StatusSummaryHandler(newStub(), zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/api/wip/status/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalCount":2,"statusCounts":[
		{"status":"ReworkFG","count":1},
		{"status":"waiting repair aging day >30","count":1}]}`, rec.Body.String())
}

func TestStatusReportHandlerFailure(t *testing.T) {
	stub := &stubBuilder{err: errors.New("fetch primary units: timeout")}
	rec := httptest.NewRecorder()

	StatusReportHandler(stub, zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/api/wip/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "fetch primary units: timeout")
}

func TestHandlersRejectNonGet(t *testing.T) {
	for _, h := range []http.HandlerFunc{
		StatusReportHandler(newStub(), zap.NewNop()),
		StatusSummaryHandler(newStub(), zap.NewNop()),
		StatusListHandler(zap.NewNop()),
	} {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestStatusListHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	StatusListHandler(zap.NewNop())(rec, httptest.NewRequest(http.MethodGet, "/api/wip/statuses", nil))

	var body StatusListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Statuses, "Can'tRepairProcess")
	assert.Contains(t, body.Statuses, "CB repaired twice but aging day >30")
}

func TestParseRequestSplitsStatuses(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/wip/status?status=ReworkFG,%20RepairInPD&status=&status=WaitingCheckOut&model=M1", nil)
	req := ParseRequest(r)
	assert.Equal(t, []string{"ReworkFG", "RepairInPD", "WaitingCheckOut"}, req.Statuses)
	assert.Equal(t, "M1", req.Filters.Model)
}
