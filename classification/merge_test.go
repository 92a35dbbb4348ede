package classification

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairwip/model"
)

func TestMergeKeepsPrimaryOccurrence(t *testing.T) {
	primary := []model.UnitRow{{Serial: "a1", Model: "M-PRIMARY", ErrorFlag: "7"}}
	rework := []model.UnitRow{{Serial: " A1 ", Model: "M-REWORK", ErrorFlag: "8"}}

	records, reworkSet := Merge(primary, rework)

	require.Len(t, records, 1)
	want := model.UnitRecord{Serial: "A1", Model: "M-PRIMARY", ErrorFlag: "7"}
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Fatalf("merged record mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, reworkSet.Contains("A1"))
}

func TestMergeOrderAndDedup(t *testing.T) {
	primary := []model.UnitRow{{Serial: "S1"}, {Serial: "s1"}, {Serial: "S2"}, {Serial: "  "}}
	rework := []model.UnitRow{{Serial: "R1"}, {Serial: "S2"}, {Serial: "r1"}}

	records, reworkSet := Merge(primary, rework)

	assert.Equal(t, []string{"S1", "S2", "R1"}, Serials(records))
	assert.Equal(t, 2, reworkSet.Len())
	assert.True(t, reworkSet.Contains("S2"))
	assert.False(t, reworkSet.Contains("S1"))
}

func TestMergeEmpty(t *testing.T) {
	records, reworkSet := Merge(nil, nil)
	assert.Empty(t, records)
	assert.Equal(t, 0, reworkSet.Len())
}

func TestMergeCopiesCheckInDate(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	records, _ := Merge([]model.UnitRow{
		{Serial: "S1", CheckInDate: sql.NullTime{Time: at, Valid: true}},
		{Serial: "S2"},
	}, nil)

	require.Len(t, records, 2)
	require.NotNil(t, records[0].CheckInDate)
	assert.True(t, at.Equal(*records[0].CheckInDate))
	assert.Nil(t, records[1].CheckInDate)
}
