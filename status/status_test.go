package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Of(ReworkFG), "ReworkFG"},
		{Of(CantRepairProcess), "Can'tRepairProcess"},
		{Of(PendingInstructions), "PendingInstructions"},
		{Aging(WaitingRepair, Under30), "waiting repair aging day <30"},
		{Aging(RepairedOnce, Under30), "CB repaired once but aging day <30"},
		{Aging(RepairedTwice, Over30), "CB repaired twice but aging day >30"},
		{Status{}, ""},
		{Status{Code: AgingQualified}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestAllowedIsStrict(t *testing.T) {
	assert.True(t, Of(RepairInRE).Allowed())
	assert.True(t, Aging(RepairedOnce, Over30).Allowed())
	assert.False(t, Status{}.Allowed())

	_, ok := Parse("RepairInRE-legacy")
	assert.False(t, ok, "labels containing an allowed label must not be accepted")
	_, ok = Parse("repairinre")
	assert.False(t, ok)
}

func TestParseRoundTripsEveryLabel(t *testing.T) {
	labels := Labels()
	assert.Len(t, labels, 18)
	for _, label := range labels {
		s, ok := Parse(label)
		require.True(t, ok, label)
		assert.Equal(t, label, s.String())
	}
}

func TestIsRepair(t *testing.T) {
	assert.True(t, Of(RepairInRE).IsRepair())
	assert.True(t, Of(RepairInPD).IsRepair())
	assert.False(t, Of(WaitingCheckOut).IsRepair())
	assert.False(t, Aging(WaitingRepair, Under30).IsRepair())
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		S Status `json:"s"`
	}{Aging(RepairedOnce, Under30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"CB repaired once but aging day <30"}`, string(b))

	var out struct {
		S Status `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"WaitingCheckOut"}`), &out))
	assert.Equal(t, Of(WaitingCheckOut), out.S)

	_, err = json.Marshal(Status{})
	assert.Error(t, err)
}

func TestSerialSet(t *testing.T) {
	set := NewSerialSet(" ab12 ", "", "CD34")
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("AB12"))
	assert.True(t, set.Contains("cd34 "))
	assert.False(t, set.Contains(""))
}
