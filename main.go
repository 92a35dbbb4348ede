package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"repairwip/config"
	"repairwip/database"
	"repairwip/loader"
	"repairwip/logging"
	"repairwip/model"
	"repairwip/report"
	"repairwip/scheduler"
)

// app holds what every command needs once config is loaded.
type app struct {
	cfg    config.Config
	db     *sqlx.DB
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "repairwip",
		Short:         "Repair WIP status classification and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.Path(), "config file")

	open := func() (*app, error) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		db, err := sqlx.Open(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := loader.InitDatabase(db, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("database initialization failed: %w", err)
		}
		return &app{cfg: cfg, db: db, logger: logger}, nil
	}

	root.AddCommand(newServeCmd(open), newReportCmd(open), newLoadCmd(open))
	return root
}

func (a *app) close() {
	a.db.Close()
	a.logger.Sync()
}

func (a *app) service() *report.Service {
	store := database.NewStore(a.db, a.cfg.FetchChunkSize, a.cfg.FetchParallelism)
	return report.NewService(store, a.logger)
}

func newServeCmd(open func() (*app, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the WIP status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := a.service()
			scheduler.StartSummaryLogger(ctx, a.cfg.SummarySchedule, svc, a.logger)

			mux := http.NewServeMux()
			SetupRoutes(mux, a.db, svc, a.logger)
			srv := &http.Server{Addr: a.cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			a.logger.Info("Server starting", zap.String("addr", a.cfg.ListenAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			a.logger.Info("Server stopped")
			return nil
		},
	}
}

func newReportCmd(open func() (*app, error)) *cobra.Command {
	var (
		statuses []string
		req      model.ReportRequest
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build one WIP status report and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.close()

			req.Statuses = statuses
			rep, err := a.service().Build(cmd.Context(), req)
			if err != nil {
				return err
			}
			if summary {
				rep.Data = nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "only include units in these statuses")
	cmd.Flags().StringVar(&req.Filters.ProductLine, "product-line", "", "product line filter")
	cmd.Flags().StringVar(&req.Filters.Model, "model", "", "model filter")
	cmd.Flags().StringVar(&req.Filters.MoPrefix, "mo-prefix", "", "MO number prefix filter")
	cmd.Flags().BoolVar(&summary, "summary", false, "omit per-unit data")
	return cmd
}

func newLoadCmd(open func() (*app, error)) *cobra.Command {
	var (
		table string
		file  string
		opts  loader.CSVOptions
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a CSV export into the local mirror database",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open()
			if err != nil {
				return err
			}
			defer a.close()

			n, err := loader.LoadCSVFile(a.db, a.logger, file, table, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rows into %s\n", n, table)
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", fmt.Sprintf("target table %v", loader.Tables()))
	cmd.Flags().StringVar(&file, "file", "", "CSV file to load")
	cmd.Flags().BoolVar(&opts.ShiftJIS, "sjis", false, "decode the file as Shift-JIS")
	cmd.Flags().BoolVar(&opts.SkipHeader, "header", false, "skip the first row")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("file")
	return cmd
}
