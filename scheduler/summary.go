package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"repairwip/model"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReportBuilder builds one status report.
type ReportBuilder interface {
	Build(ctx context.Context, req model.ReportRequest) (model.StatusReport, error)
}

// ParseSchedule parses a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
func ParseSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(strings.TrimSpace(expr))
	if err != nil {
		return nil, fmt.Errorf("invalid summary schedule %q: %w", expr, err)
	}
	return sched, nil
}

// StartSummaryLogger logs the status counts of an unfiltered report on every
// tick of schedule until ctx is done. It returns false when the schedule is
// empty or invalid and nothing was started.
func StartSummaryLogger(ctx context.Context, schedule string, builder ReportBuilder, logger *zap.Logger) bool {
	if strings.TrimSpace(schedule) == "" {
		logger.Info("Summary logger disabled (summary_schedule not set)")
		return false
	}
	sched, err := ParseSchedule(schedule)
	if err != nil {
		logger.Warn("Summary logger disabled", zap.Error(err))
		return false
	}
	logger.Info("Summary logger scheduled", zap.String("cron", schedule))

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			timer := time.NewTimer(next.Sub(now))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			LogSummary(ctx, builder, logger)
		}
	}()
	return true
}

// LogSummary builds one unfiltered report and logs its status counts.
func LogSummary(ctx context.Context, builder ReportBuilder, logger *zap.Logger) {
	report, err := builder.Build(ctx, model.ReportRequest{})
	if err != nil {
		logger.Error("Scheduled WIP summary failed", zap.Error(err))
		return
	}
	fields := make([]zap.Field, 0, len(report.StatusCounts)+1)
	fields = append(fields, zap.Int("totalCount", report.TotalCount))
	for _, sc := range report.StatusCounts {
		fields = append(fields, zap.Int(sc.Status, sc.Count))
	}
	logger.Info("WIP status summary", fields...)
}
