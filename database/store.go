package database

import (
	"context"

	"repairwip/model"

	"github.com/jmoiron/sqlx"
)

// Store serves unit rows and lookups from a SQL database.
type Store struct {
	db          *sqlx.DB
	chunkSize   int
	parallelism int
}

func NewStore(db *sqlx.DB, chunkSize, parallelism int) *Store {
	return &Store{db: db, chunkSize: chunkSize, parallelism: parallelism}
}

func (s *Store) PrimaryUnits(ctx context.Context, filters model.UnitFilters) ([]model.UnitRow, error) {
	return GetPrimaryUnits(ctx, s.db, filters)
}

func (s *Store) ReworkUnits(ctx context.Context, filters model.UnitFilters) ([]model.UnitRow, error) {
	return GetReworkUnits(ctx, s.db, filters)
}

func (s *Store) ScrapInfo(ctx context.Context, serials []string) (map[string]model.ScrapInfo, error) {
	return GetScrapInfoBySerials(ctx, s.db, serials, s.chunkSize, s.parallelism)
}

func (s *Store) FailHistory(ctx context.Context, serials []string) (map[string][]model.FailHistoryEntry, error) {
	return GetFailHistoryBySerials(ctx, s.db, serials, s.chunkSize, s.parallelism)
}
