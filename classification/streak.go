package classification

import (
	"math"
	"strconv"
	"strings"

	"repairwip/model"
	"repairwip/status"
)

// agingThresholdDays splits the two aging buckets. Exactly 30 days still
// falls in the lower bucket.
const agingThresholdDays = 30.0

// Streak counts how many of the newest-first entries share the test group
// of the most recent one, stopping at the first change.
func Streak(entries []model.FailHistoryEntry) int {
	if len(entries) == 0 {
		return 0
	}
	group := entries[0].TestGroup
	k := 0
	for _, e := range entries {
		if e.TestGroup != group {
			break
		}
		k++
	}
	return k
}

// PhaseFor maps a consecutive fail streak to its repair phase.
func PhaseFor(streak int) status.RepairPhase {
	switch {
	case streak <= 1:
		return status.WaitingRepair
	case streak == 2:
		return status.RepairedOnce
	default:
		return status.RepairedTwice
	}
}

// ParseAgingDay reads the string-encoded aging value. Anything that is not
// a finite decimal number counts as zero days.
func ParseAgingDay(v string) float64 {
	days, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(days) || math.IsInf(days, 0) {
		return 0
	}
	return days
}

// BucketFor places an aging value in its bucket.
func BucketFor(agingDay string) status.AgingBucket {
	if ParseAgingDay(agingDay) > agingThresholdDays {
		return status.Over30
	}
	return status.Under30
}

// RefineSerials returns the serials of records that need fail history.
func RefineSerials(records []model.UnitRecord) []string {
	var serials []string
	for _, r := range records {
		if r.Status.IsRepair() {
			serials = append(serials, r.Serial)
		}
	}
	return serials
}

// Refine replaces the status of every in-repair record that has fail
// history with its aging-qualified variant. Records without history keep
// their status. The input slice is not modified.
func Refine(records []model.UnitRecord, history map[string][]model.FailHistoryEntry) []model.UnitRecord {
	refined := make([]model.UnitRecord, len(records))
	copy(refined, records)
	for i := range refined {
		rec := &refined[i]
		if !rec.Status.IsRepair() {
			continue
		}
		entries, ok := history[rec.Serial]
		if !ok || len(entries) == 0 {
			continue
		}
		rec.Status = status.Aging(PhaseFor(Streak(entries)), BucketFor(rec.AgingDay))
	}
	return refined
}
