package database

import (
	"context"
	"fmt"
	"sort"

	"repairwip/model"
	"repairwip/status"

	"github.com/jmoiron/sqlx"
)

// GetFailHistoryBySerials returns each serial's test events, newest first.
func GetFailHistoryBySerials(ctx context.Context, db *sqlx.DB, serials []string, chunkSize, parallelism int) (map[string][]model.FailHistoryEntry, error) {
	result, err := fetchChunked(ctx, serials, chunkSize, parallelism,
		func(ctx context.Context, chunk []string) (map[string][]model.FailHistoryEntry, error) {
			return getFailHistoryChunk(ctx, db, chunk)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get fail history: %w", err)
	}
	return result, nil
}

func getFailHistoryChunk(ctx context.Context, db *sqlx.DB, chunk []string) (map[string][]model.FailHistoryEntry, error) {
	query, args, err := sqlx.In(`SELECT serial_number, test_group, test_time FROM test_events
		WHERE UPPER(TRIM(serial_number)) IN (?) ORDER BY test_time DESC, id DESC`, chunk)
	if err != nil {
		return nil, fmt.Errorf("failed to create IN query for history batch: %w", err)
	}
	var entries []model.FailHistoryEntry
	if err := db.SelectContext(ctx, &entries, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to select test events for batch: %w", err)
	}

	history := make(map[string][]model.FailHistoryEntry)
	for _, e := range entries {
		e.Serial = status.NormalizeSerial(e.Serial)
		history[e.Serial] = append(history[e.Serial], e)
	}
	for _, list := range history {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].TestTime.After(list[j].TestTime)
		})
	}
	return history, nil
}
