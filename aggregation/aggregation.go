package aggregation

import (
	"repairwip/model"
)

// Aggregate counts records per final status and applies the optional status
// filter to the returned data. Counts always cover the unfiltered records so
// the summary does not change with the filter.
func Aggregate(records []model.UnitRecord, requested []string) model.StatusReport {
	report := model.StatusReport{
		TotalCount:   len(records),
		StatusCounts: CountByStatus(records),
	}

	filter := newStatusFilter(requested)
	if filter.empty() {
		report.Data = records
		report.Count = report.TotalCount
		return report
	}

	data := make([]model.UnitRecord, 0, len(records))
	for _, r := range records {
		if filter.matches(r.Status.String()) {
			data = append(data, r)
		}
	}
	report.Data = data
	report.Count = len(data)
	return report
}

// CountByStatus groups records on their status label, ignoring case. Groups
// are listed in order of first appearance and keep the first-seen spelling.
func CountByStatus(records []model.UnitRecord) []model.StatusCount {
	counts := []model.StatusCount{}
	index := make(map[string]int)
	for _, r := range records {
		label := r.Status.String()
		key := foldKey(label)
		if i, ok := index[key]; ok {
			counts[i].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, model.StatusCount{Status: label, Count: 1})
	}
	return counts
}
