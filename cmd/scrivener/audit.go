package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"verity-hq/scrivener/pkg/audit"
	"verity-hq/scrivener/pkg/audit/export"
	"verity-hq/scrivener/pkg/audit/retention"
)

var auditFlags struct {
	runID    string
	policyID string
	firm     string
	since    string
	until    string
	limit    int
	offset   int
	format   string
	output   string
	verify   bool
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query and maintain stored audit bundles",
	Long: `Query, export, and prune audit bundles from the configured backend.

Subcommands:
  query - query bundles with filters and export them
  prune - apply the retention policy once, immediately

Examples:
  # All bundles for a policy, as pretty JSON
  scrivener audit query --policy pol-001 --format json

  # CSV summary of last quarter for one firm
  scrivener audit query --firm "Acme Advisors" --since 2026-06-01 --format csv

  # Verify content hashes while querying
  scrivener audit query --run run-123 --verify`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit bundles",
	RunE:  runAuditQuery,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy now",
	RunE:  runAuditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.runID, "run", "", "filter by run ID")
	auditQueryCmd.Flags().StringVar(&auditFlags.policyID, "policy", "", "filter by policy ID")
	auditQueryCmd.Flags().StringVar(&auditFlags.firm, "firm", "", "filter by firm name")
	auditQueryCmd.Flags().StringVar(&auditFlags.since, "since", "", "generated on or after (YYYY-MM-DD)")
	auditQueryCmd.Flags().StringVar(&auditFlags.until, "until", "", "generated on or before (YYYY-MM-DD)")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "maximum bundles returned")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "bundles to skip")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "json", "output format: json, csv")
	auditQueryCmd.Flags().StringVar(&auditFlags.output, "output", "", "output file (default stdout)")
	auditQueryCmd.Flags().BoolVar(&auditFlags.verify, "verify", false, "verify bundle content hashes")
}

func runAuditQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, nil)

	query := &audit.Query{
		RunID:    auditFlags.runID,
		PolicyID: auditFlags.policyID,
		FirmName: auditFlags.firm,
		Limit:    auditFlags.limit,
		Offset:   auditFlags.offset,
	}
	if auditFlags.since != "" {
		t, err := time.Parse("2006-01-02", auditFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since %q: %w", auditFlags.since, err)
		}
		query.Start = &t
	}
	if auditFlags.until != "" {
		t, err := time.Parse("2006-01-02", auditFlags.until)
		if err != nil {
			return fmt.Errorf("invalid --until %q: %w", auditFlags.until, err)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		query.End = &end
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	bundles, err := store.Query(ctx, query)
	if err != nil {
		return err
	}

	if auditFlags.verify {
		for _, b := range bundles {
			ok, err := audit.VerifyBundle(b)
			if err != nil {
				return fmt.Errorf("verify bundle %s: %w", b.ID, err)
			}
			if !ok {
				logger.Warn("content hash mismatch", "bundle_id", b.ID)
			}
		}
	}

	var exporter audit.Exporter
	switch auditFlags.format {
	case "json":
		exporter = export.NewJSONExporter(true)
	case "csv":
		exporter = export.NewCSVExporter()
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", auditFlags.format)
	}

	var w io.Writer = os.Stdout
	if auditFlags.output != "" {
		f, err := os.Create(auditFlags.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := exporter.Export(ctx, bundles, w); err != nil {
		return err
	}

	logger.Info("audit query complete", "bundles", len(bundles))
	return nil
}

func runAuditPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

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
	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d bundle(s)\n", deleted)
	return nil
}
