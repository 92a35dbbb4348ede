package database

import (
	"context"
	"database/sql"
	"fmt"

	"repairwip/model"
	"repairwip/status"

	"github.com/jmoiron/sqlx"
)

type scrapTaskRow struct {
	Serial          string         `db:"serial_number"`
	ApplyTaskStatus int            `db:"apply_task_status"`
	TaskNumber      sql.NullString `db:"task_number"`
}

// GetScrapInfoBySerials looks up the scrap-system disposition of each serial.
// Serials absent from the scrap system have no entry in the result. When a
// serial has several tasks, the most recently updated one wins.
func GetScrapInfoBySerials(ctx context.Context, db *sqlx.DB, serials []string, chunkSize, parallelism int) (map[string]model.ScrapInfo, error) {
	result, err := fetchChunked(ctx, serials, chunkSize, parallelism,
		func(ctx context.Context, chunk []string) (map[string]model.ScrapInfo, error) {
			return getScrapInfoChunk(ctx, db, chunk)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get scrap info: %w", err)
	}
	return result, nil
}

func getScrapInfoChunk(ctx context.Context, db *sqlx.DB, chunk []string) (map[string]model.ScrapInfo, error) {
	query, args, err := sqlx.In(`SELECT serial_number, apply_task_status, task_number FROM scrap_tasks
		WHERE UPPER(TRIM(serial_number)) IN (?) ORDER BY updated_at, id`, chunk)
	if err != nil {
		return nil, fmt.Errorf("failed to create IN query for scrap batch: %w", err)
	}
	var rows []scrapTaskRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select scrap tasks for batch: %w", err)
	}

	infos := make(map[string]model.ScrapInfo, len(rows))
	for _, r := range rows {
		infos[status.NormalizeSerial(r.Serial)] = model.ScrapInfo{
			ApplyTaskStatus: r.ApplyTaskStatus,
			TaskNumber:      r.TaskNumber.String,
		}
	}
	return infos, nil
}
