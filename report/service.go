package report

import (
	"context"
	"fmt"
	"time"

	"repairwip/aggregation"
	"repairwip/classification"
	"repairwip/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source supplies the unit rows and lookups a report is built from.
type Source interface {
	PrimaryUnits(ctx context.Context, filters model.UnitFilters) ([]model.UnitRow, error)
	ReworkUnits(ctx context.Context, filters model.UnitFilters) ([]model.UnitRow, error)
	ScrapInfo(ctx context.Context, serials []string) (map[string]model.ScrapInfo, error)
	FailHistory(ctx context.Context, serials []string) (map[string][]model.FailHistoryEntry, error)
}

// Service builds WIP status reports. It keeps no state between calls, so a
// single Service may serve concurrent requests.
type Service struct {
	source Source
	logger *zap.Logger
}

func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Build fetches the current units, classifies and refines them, and counts
// them per status. Any fetch failure or cancellation fails the whole call
// and no partial report is returned.
func (s *Service) Build(ctx context.Context, req model.ReportRequest) (model.StatusReport, error) {
	start := time.Now()

	var primary, rework []model.UnitRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.source.PrimaryUnits(gctx, req.Filters)
		if err != nil {
			return fmt.Errorf("fetch primary units: %w", err)
		}
		primary = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.source.ReworkUnits(gctx, req.Filters)
		if err != nil {
			return fmt.Errorf("fetch rework units: %w", err)
		}
		rework = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.StatusReport{}, err
	}

	records, reworkSet := classification.Merge(primary, rework)

	scrap, err := s.source.ScrapInfo(ctx, classification.Serials(records))
	if err != nil {
		return model.StatusReport{}, fmt.Errorf("fetch scrap info: %w", err)
	}
	classified := classification.ClassifyAll(records, reworkSet, scrap)

	var history map[string][]model.FailHistoryEntry
	if serials := classification.RefineSerials(classified); len(serials) > 0 {
		history, err = s.source.FailHistory(ctx, serials)
		if err != nil {
			return model.StatusReport{}, fmt.Errorf("fetch fail history: %w", err)
		}
	}
	refined := classification.Refine(classified, history)

	if err := ctx.Err(); err != nil {
		return model.StatusReport{}, err
	}

	report := aggregation.Aggregate(refined, req.Statuses)
	s.logger.Debug("Built WIP status report",
		zap.Int("primary", len(primary)),
		zap.Int("rework", len(rework)),
		zap.Int("merged", len(records)),
		zap.Int("scrapEntries", len(scrap)),
		zap.Int("historySerials", len(history)),
		zap.Int("total", report.TotalCount),
		zap.Int("count", report.Count),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}
