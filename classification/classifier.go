package classification

import (
	"strings"

	"repairwip/model"
	"repairwip/status"
)

// Classify assigns one workflow status to rec. Rules are evaluated in
// priority order and the first match wins; later rules rely on earlier
// ones not having matched.
func Classify(rec model.UnitRecord, rework status.SerialSet, scrap map[string]model.ScrapInfo) status.Status {
	if rework.Contains(rec.Serial) {
		return status.Of(status.ReworkFG)
	}

	if info, ok := scrap[rec.Serial]; ok {
		return scrapStatus(info)
	}

	if strings.HasPrefix(strings.TrimSpace(rec.MoNumber), "4") {
		return status.Of(status.ReworkFG)
	}

	errorFlag := strings.TrimSpace(rec.ErrorFlag)
	workFlag := strings.TrimSpace(rec.WorkFlag)
	if errorFlag != "8" &&
		(strings.Contains(rec.WipGroup, "B28M") ||
			strings.Contains(rec.WipGroup, "B30M") ||
			workFlag == "2" || workFlag == "5") {
		return status.Of(status.RepairInRE)
	}

	switch errorFlag {
	case "7":
		return status.Of(status.RepairInRE)
	case "8":
		return status.Of(status.WaitingCheckOut)
	default:
		return status.Of(status.RepairInPD)
	}
}

func scrapStatus(info model.ScrapInfo) status.Status {
	switch info.ApplyTaskStatus {
	case 5, 6, 7:
		return status.Of(status.ScrapHasTask)
	case 0, 1:
		if !hasTask(info.TaskNumber) {
			return status.Of(status.ScrapLackTask)
		}
		return status.Of(status.ScrapHasTask)
	case 2:
		return status.Of(status.WaitingApprovalScrap)
	case 4:
		return status.Of(status.WaitingApprovalBGA)
	case 8:
		return status.Of(status.CantRepairProcess)
	case 22:
		return status.Of(status.PendingInstructions)
	default:
		return status.Of(status.ApprovedBGA)
	}
}

func hasTask(taskNumber string) bool {
	t := strings.TrimSpace(taskNumber)
	return t != "" && !strings.EqualFold(t, "N/A")
}

// ClassifyAll classifies every record and drops any whose status falls
// outside the allow-list. The input slice is not modified.
func ClassifyAll(records []model.UnitRecord, rework status.SerialSet, scrap map[string]model.ScrapInfo) []model.UnitRecord {
	classified := make([]model.UnitRecord, 0, len(records))
	for _, rec := range records {
		rec.Status = Classify(rec, rework, scrap)
		if !rec.Status.Allowed() {
			continue
		}
		classified = append(classified, rec)
	}
	return classified
}
