package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"verity-hq/scrivener/pkg/audit"
	"verity-hq/scrivener/pkg/rules/engine"
	"verity-hq/scrivener/pkg/wizard/ast"
)

func exportBundle(id string) *audit.Bundle {
	return &audit.Bundle{
		ID:              id,
		RunID:           "run-" + id,
		PolicyID:        "pol-001",
		FirmName:        "Acme Advisors",
		Answers:         ast.AnswerMap{"has_domestic_peps": ast.Boolean(true)},
		IncludedClauses: []string{"aml_retail_cdd", "aml_edd_domestic_pep"},
		RulesFired: []engine.Firing{
			{RuleName: "baseline", ConditionMet: true},
			{RuleName: "pep", ConditionMet: true},
			{RuleName: "never", ConditionMet: false},
		},
		Variables:   map[string]ast.Value{"approver_role": ast.String("SMF17")},
		GeneratedBy: "Jane Smith",
		GeneratedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		ContentHash: "abc123",
	}
}

func TestJSONExporter_Export(t *testing.T) {
	t.Run("empty set writes empty array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewJSONExporter(false).Export(context.Background(), nil, &buf); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if buf.String() != "[]" {
			t.Errorf("output = %q, want []", buf.String())
		}
	})

	t.Run("single bundle writes object", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewJSONExporter(false).Export(context.Background(), []*audit.Bundle{exportBundle("b-1")}, &buf)
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		var decoded audit.Bundle
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not a single object: %v", err)
		}
		if decoded.ID != "b-1" || decoded.FirmName != "Acme Advisors" {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("multiple bundles write array", func(t *testing.T) {
		var buf bytes.Buffer
		bundles := []*audit.Bundle{exportBundle("b-1"), exportBundle("b-2")}
		if err := NewJSONExporter(true).Export(context.Background(), bundles, &buf); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		var decoded []*audit.Bundle
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not an array: %v", err)
		}
		if len(decoded) != 2 {
			t.Errorf("decoded %d bundles, want 2", len(decoded))
		}
	})

	t.Run("round trip preserves answers and firing log", func(t *testing.T) {
		var buf bytes.Buffer
		original := exportBundle("b-rt")
		if err := NewJSONExporter(false).Export(context.Background(), []*audit.Bundle{original}, &buf); err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		var decoded audit.Bundle
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if !decoded.Answers.Get("has_domestic_peps").Equal(ast.Boolean(true)) {
			t.Error("answers lost in round trip")
		}
		if len(decoded.RulesFired) != 3 || decoded.RulesFired[2].ConditionMet {
			t.Errorf("firing log lost in round trip: %+v", decoded.RulesFired)
		}
	})
}

func TestCSVExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	bundles := []*audit.Bundle{exportBundle("b-1"), exportBundle("b-2")}
	if err := NewCSVExporter().Export(context.Background(), bundles, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[0] != "b-1" {
		t.Errorf("id = %q, want b-1", row[0])
	}
	if row[4] != "aml_retail_cdd;aml_edd_domestic_pep" {
		t.Errorf("included_clauses = %q", row[4])
	}
	if row[5] != "3" || row[6] != "2" {
		t.Errorf("rules_fired/matched = %q/%q, want 3/2", row[5], row[6])
	}
	if row[8] != "2026-03-15T10:30:00Z" {
		t.Errorf("generated_at = %q", row[8])
	}
}

func TestCSVExporter_Export_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCSVExporter().Export(context.Background(), nil, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("rows = %d, want header only", len(records))
	}
}
