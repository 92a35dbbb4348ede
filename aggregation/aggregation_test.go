package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"repairwip/model"
	"repairwip/status"
)

func records() []model.UnitRecord {
	return []model.UnitRecord{
		{Serial: "S1", Status: status.Of(status.ReworkFG)},
		{Serial: "S2", Status: status.Of(status.RepairInPD)},
		{Serial: "S3", Status: status.Of(status.ReworkFG)},
		{Serial: "S4", Status: status.Aging(status.RepairedOnce, status.Under30)},
		{Serial: "S5", Status: status.Of(status.WaitingCheckOut)},
	}
}

func sumCounts(counts []model.StatusCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}

func TestAggregateUnfiltered(t *testing.T) {
	report := Aggregate(records(), nil)

	assert.Equal(t, 5, report.TotalCount)
	assert.Equal(t, 5, report.Count)
	assert.Len(t, report.Data, 5)
	assert.Equal(t, []model.StatusCount{
		{Status: "ReworkFG", Count: 2},
		{Status: "RepairInPD", Count: 1},
		{Status: "CB repaired once but aging day <30", Count: 1},
		{Status: "WaitingCheckOut", Count: 1},
	}, report.StatusCounts)
	assert.Equal(t, report.TotalCount, sumCounts(report.StatusCounts))
}

func TestAggregateFilterLeavesCountsUnchanged(t *testing.T) {
	unfiltered := Aggregate(records(), nil)
	filtered := Aggregate(records(), []string{"reworkfg"})

	assert.Equal(t, unfiltered.StatusCounts, filtered.StatusCounts)
	assert.Equal(t, 5, filtered.TotalCount)
	assert.Equal(t, 2, filtered.Count)
	assert.Len(t, filtered.Data, filtered.Count)
	for _, r := range filtered.Data {
		assert.Equal(t, "ReworkFG", r.Status.String())
	}
}

func TestAggregateCommaSeparatedFilter(t *testing.T) {
	report := Aggregate(records(), []string{"WaitingCheckOut, CB REPAIRED ONCE BUT AGING DAY <30", " "})

	assert.Equal(t, 2, report.Count)
	assert.Equal(t, []string{"S4", "S5"}, []string{report.Data[0].Serial, report.Data[1].Serial})
}

func TestAggregateBlankFilterMeansAll(t *testing.T) {
	report := Aggregate(records(), []string{"", "  "})
	assert.Equal(t, report.TotalCount, report.Count)
}

func TestAggregateUnknownFilterYieldsNoData(t *testing.T) {
	report := Aggregate(records(), []string{"Shipped"})
	assert.Equal(t, 0, report.Count)
	assert.Empty(t, report.Data)
	assert.Equal(t, 5, report.TotalCount)
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil, []string{"ReworkFG"})
	assert.Equal(t, 0, report.TotalCount)
	assert.Equal(t, 0, report.Count)
	assert.NotNil(t, report.StatusCounts)
	assert.Equal(t, 0, sumCounts(report.StatusCounts))
}
