package model

import (
	"database/sql"
	"time"

	"repairwip/status"
)

// UnitRow is one raw unit row as returned by a production data source.
type UnitRow struct {
	Serial        string       `db:"serial_number" json:"serialNumber"`
	Model         string       `db:"model_name" json:"modelName"`
	MoNumber      string       `db:"mo_number" json:"moNumber"`
	ProductLine   string       `db:"product_line" json:"productLine"`
	WipGroup      string       `db:"wip_group" json:"wipGroup"`
	ErrorFlag     string       `db:"error_flag" json:"errorFlag"`
	WorkFlag      string       `db:"work_flag" json:"workFlag"`
	TestGroup     string       `db:"test_group" json:"testGroup"`
	TestCode      string       `db:"test_code" json:"testCode"`
	ErrorItemCode string       `db:"error_item_code" json:"errorItemCode"`
	ErrorDesc     string       `db:"error_desc" json:"errorDesc"`
	CheckInDate   sql.NullTime `db:"check_in_date" json:"-"`
	AgingDay      string       `db:"aging_day" json:"agingDay"`
}

// UnitRecord is the canonical per-serial record carried through
// classification and aggregation.
type UnitRecord struct {
	Serial        string        `json:"serialNumber"`
	Model         string        `json:"modelName"`
	MoNumber      string        `json:"moNumber"`
	ProductLine   string        `json:"productLine"`
	WipGroup      string        `json:"wipGroup"`
	ErrorFlag     string        `json:"errorFlag"`
	WorkFlag      string        `json:"workFlag"`
	TestGroup     string        `json:"testGroup"`
	TestCode      string        `json:"testCode"`
	ErrorItemCode string        `json:"errorItemCode"`
	ErrorDesc     string        `json:"errorDesc"`
	CheckInDate   *time.Time    `json:"checkInDate,omitempty"`
	AgingDay      string        `json:"agingDay"`
	Status        status.Status `json:"status"`
}

// ScrapInfo is the scrap-system disposition of one serial.
type ScrapInfo struct {
	ApplyTaskStatus int    `db:"apply_task_status" json:"applyTaskStatus"`
	TaskNumber      string `db:"task_number" json:"taskNumber"`
}

// FailHistoryEntry is one historical test event.
type FailHistoryEntry struct {
	Serial    string    `db:"serial_number" json:"serialNumber"`
	TestGroup string    `db:"test_group" json:"testGroup"`
	TestTime  time.Time `db:"test_time" json:"testTime"`
}

// StatusCount is the number of units in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatusReport is the output of one report run.
type StatusReport struct {
	TotalCount   int           `json:"totalCount"`
	StatusCounts []StatusCount `json:"statusCounts"`
	Count        int           `json:"count"`
	Data         []UnitRecord  `json:"data"`
}

// UnitFilters narrows the unit rows fetched from the data source.
type UnitFilters struct {
	ProductLine string
	Model       string
	MoPrefix    string
}

// ReportRequest is one caller request for a report.
type ReportRequest struct {
	Filters  UnitFilters
	Statuses []string
}
