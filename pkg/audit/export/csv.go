package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"verity-hq/scrivener/pkg/audit"
)

// csvHeader is the fixed column set for CSV export. Nested fields (answers,
// variables, firing log) are summarized; use the JSON exporter for the full
// record.
var csvHeader = []string{
	"id",
	"run_id",
	"policy_id",
	"firm_name",
	"included_clauses",
	"rules_fired",
	"rules_matched",
	"generated_by",
	"generated_at",
	"content_hash",
}

// CSVExporter exports audit bundles as CSV, one row per bundle.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes bundles to w as CSV with a header row.
func (e *CSVExporter) Export(ctx context.Context, bundles []*audit.Bundle, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return audit.NewExportError("csv", len(bundles), err)
	}

	for _, b := range bundles {
		matched := 0
		for _, f := range b.RulesFired {
			if f.ConditionMet {
				matched++
			}
		}

		row := []string{
			b.ID,
			b.RunID,
			b.PolicyID,
			b.FirmName,
			strings.Join(b.IncludedClauses, ";"),
			strconv.Itoa(len(b.RulesFired)),
			strconv.Itoa(matched),
			b.GeneratedBy,
			b.GeneratedAt.UTC().Format(time.RFC3339),
			b.ContentHash,
		}
		if err := cw.Write(row); err != nil {
			return audit.NewExportError("csv", len(bundles), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return audit.NewExportError("csv", len(bundles), err)
	}
	return nil
}
