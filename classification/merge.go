package classification

import (
	"repairwip/model"
	"repairwip/status"
)

// Merge combines the primary and rework unit batches into one record per
// normalized serial. Primary rows are considered first, so when a serial
// appears in both batches the primary occurrence is kept. The returned set
// holds every serial seen in the rework batch.
func Merge(primary, rework []model.UnitRow) ([]model.UnitRecord, status.SerialSet) {
	reworkSet := status.NewSerialSet()
	for _, row := range rework {
		reworkSet.Add(row.Serial)
	}

	seen := make(map[string]bool, len(primary)+len(rework))
	records := make([]model.UnitRecord, 0, len(primary)+len(rework))

	for _, batch := range [][]model.UnitRow{primary, rework} {
		for _, row := range batch {
			serial := status.NormalizeSerial(row.Serial)
			if serial == "" || seen[serial] {
				continue
			}
			seen[serial] = true
			records = append(records, toRecord(serial, row))
		}
	}
	return records, reworkSet
}

func toRecord(serial string, row model.UnitRow) model.UnitRecord {
	rec := model.UnitRecord{
		Serial:        serial,
		Model:         row.Model,
		MoNumber:      row.MoNumber,
		ProductLine:   row.ProductLine,
		WipGroup:      row.WipGroup,
		ErrorFlag:     row.ErrorFlag,
		WorkFlag:      row.WorkFlag,
		TestGroup:     row.TestGroup,
		TestCode:      row.TestCode,
		ErrorItemCode: row.ErrorItemCode,
		ErrorDesc:     row.ErrorDesc,
		AgingDay:      row.AgingDay,
	}
	if row.CheckInDate.Valid {
		t := row.CheckInDate.Time
		rec.CheckInDate = &t
	}
	return rec
}

// Serials returns the serial of every record in order.
func Serials(records []model.UnitRecord) []string {
	serials := make([]string, 0, len(records))
	for _, r := range records {
		serials = append(serials, r.Serial)
	}
	return serials
}
