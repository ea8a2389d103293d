package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"verity-hq/scrivener/pkg/audit/retention"
	"verity-hq/scrivener/pkg/library"
	"verity-hq/scrivener/pkg/telemetry/metrics"
)

var watchFlags struct {
	libraryDir string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a clause library, re-validating on change",
	Long: `Watch a clause library directory and re-validate it whenever its
files change. Intended for library authoring: keep it running next to
your editor and lint findings appear as you save.

When metrics are enabled the Prometheus endpoint is served for the
lifetime of the watch. When audit retention is enabled the scheduled
prune job runs alongside.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchFlags.libraryDir, "library", "", "library directory (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, nil)

	libDir := watchFlags.libraryDir
	if libDir == "" {
		libDir = cfg.Library.Dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(nil)
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		srv := &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddress, Handler: mux}
		go func() {
			logger.Info("metrics endpoint listening",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = srv.Close()
		}()
	}

	if cfg.Audit.Enabled && cfg.Audit.Retention.Enabled {
		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		pruner := retention.NewPruner(store, &retention.Config{
			RetentionDays: cfg.Audit.Retention.Days,
			PruneSchedule: cfg.Audit.Retention.Schedule,
			MaxBundles:    int64(cfg.Audit.Retention.MaxBundles),
		})
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start retention scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	revalidate := func() error {
		lib, err := library.LoadDir(libDir, logger)
		collector.RecordLibraryReload(err)
		if err != nil {
			return err
		}
		problems := lib.Lint()
		for _, p := range problems {
			fmt.Println(p.String())
		}
		logger.Info("library validated",
			"clauses", len(lib.Clauses), "rules", len(lib.Rules), "findings", len(problems))
		return nil
	}
	if err := revalidate(); err != nil {
		logger.Error("initial library load failed", "error", err)
	}

	watcher, err := library.NewWatcher(libDir, cfg.Library.DebounceInterval, logger)
	if err != nil {
		return err
	}
	return watcher.Watch(ctx, revalidate)
}
