package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"verity-hq/scrivener/pkg/document"
	"verity-hq/scrivener/pkg/library"
	"verity-hq/scrivener/pkg/rules/engine"
	"verity-hq/scrivener/pkg/sanitize"
	"verity-hq/scrivener/pkg/telemetry/metrics"
	"verity-hq/scrivener/pkg/template"
	"verity-hq/scrivener/pkg/wizard/ast"
	"verity-hq/scrivener/pkg/wizard/graph"
)

var generateFlags struct {
	libraryDir string
	runFile    string
	outputDir  string
	noAudit    bool
}

// runFile is the YAML document describing one generation request: the
// firm profile (by id or inline), the answer snapshot, and approval
// and authorship metadata.
type runFile struct {
	RunID         string            `yaml:"run_id"`
	ProfileID     string            `yaml:"profile_id"`
	Profile       *ast.FirmProfile  `yaml:"profile"`
	Status        ast.RunStatus     `yaml:"status"`
	Answers       ast.AnswerMap     `yaml:"answers"`
	GeneratedBy   string            `yaml:"generated_by"`
	EffectiveDate string            `yaml:"effective_date"`
	Metadata      map[string]string `yaml:"metadata"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a policy document",
	Long: `Generate a tailored policy document from a clause library and a run file.

The run file names the firm profile and carries the wizard answers:

  profile_id: firm-001
  status: approved
  generated_by: "Jane Smith"
  effective_date: 2026-01-01
  answers:
    business_type: retail_investment
    has_domestic_peps: true

Unanswered questions fall back to the firm profile's attributes during
rule evaluation. The document and its audit bundle are written to the
output directory; the bundle is also persisted to the configured audit
backend unless --no-audit is given.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&generateFlags.libraryDir, "library", "", "library directory (overrides config)")
	generateCmd.Flags().StringVar(&generateFlags.runFile, "run", "", "run file (required)")
	generateCmd.Flags().StringVar(&generateFlags.outputDir, "output", ".", "output directory")
	generateCmd.Flags().BoolVar(&generateFlags.noAudit, "no-audit", false, "skip audit bundle persistence")
	_ = generateCmd.MarkFlagRequired("run")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, nil)

	libDir := generateFlags.libraryDir
	if libDir == "" {
		libDir = cfg.Library.Dir
	}
	lib, err := library.LoadDir(libDir, logger)
	if err != nil {
		return err
	}
	if lib.Policy == nil {
		return fmt.Errorf("library %s carries no policy record", libDir)
	}

	rf, err := readRunFile(generateFlags.runFile)
	if err != nil {
		return err
	}
	profile := rf.Profile
	if profile == nil {
		profile = lib.ProfileByID(rf.ProfileID)
		if profile == nil {
			return fmt.Errorf("unknown firm profile %q", rf.ProfileID)
		}
	}

	run := ast.NewRun(profile.ID, lib.Policy.ID)
	if rf.RunID != "" {
		run.ID = rf.RunID
	}
	if rf.Status != "" {
		run.Status = rf.Status
	}
	run.Answers = rf.Answers
	run.Metadata = rf.Metadata

	// Surface validation issues before generating; they are advisory
	// here since answers may intentionally be partial for drafts.
	issues := graph.Validate(lib.Questions, run.Answers)
	for _, issue := range issues {
		logger.Warn("answer validation issue",
			"question", issue.Field, "code", issue.Code, "message", issue.Message)
	}

	collector := metrics.NewCollector(nil)
	started := time.Now()

	eng := engine.New(logger)
	result := eng.Evaluate(lib.Rules, engine.Input{
		PolicyID: lib.Policy.ID,
		Answers:  run.Answers,
		Profile:  profile,
	})
	run.SelectedClauses = result.IncludedClauses
	run.Variables = result.Variables

	matched := 0
	for _, firing := range result.FiringLog {
		if firing.ConditionMet {
			matched++
		}
	}
	collector.RecordRuleEvaluations(matched, len(result.FiringLog)-matched)
	collector.RecordClauseSelection(len(result.IncludedClauses), len(result.ExcludedClauses))

	meta := document.GenerationMeta{
		GeneratedBy: rf.GeneratedBy,
		GeneratedAt: time.Now().UTC(),
	}
	if rf.EffectiveDate != "" {
		effective, err := time.Parse("2006-01-02", rf.EffectiveDate)
		if err != nil {
			return fmt.Errorf("invalid effective_date %q: %w", rf.EffectiveDate, err)
		}
		meta.EffectiveDate = effective
	}

	renderer := template.NewRenderer(logger)
	renderer.MaxDepth = cfg.Template.MaxDepth
	assembler := document.NewAssembler(
		renderer,
		sanitize.New(&sanitize.Config{TOCArtifactThreshold: cfg.Sanitizer.TOCArtifactThreshold}),
		logger,
	)
	out, err := assembler.Generate(document.Input{
		Run:         run,
		Policy:      lib.Policy,
		Profile:     profile,
		Clauses:     lib.Clauses,
		RulesResult: result,
		Meta:        meta,
	})
	if err != nil {
		collector.RecordGeneration(lib.Policy.Code, "error", time.Since(started))
		return err
	}
	collector.RecordRenderWarnings(out.RenderWarnings)
	collector.RecordGeneration(lib.Policy.Code, "success", time.Since(started))

	if err := os.MkdirAll(generateFlags.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	docPath := filepath.Join(generateFlags.outputDir, out.Filename+".txt")
	if err := os.WriteFile(docPath, out.DocumentBytes, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	if !generateFlags.noAudit && cfg.Audit.Enabled {
		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Store(context.Background(), out.Bundle); err != nil {
			return fmt.Errorf("store audit bundle: %w", err)
		}
	}

	logger.Info("document generated",
		"document", docPath,
		"bundle_id", out.Bundle.ID,
		"clauses", len(out.Bundle.IncludedClauses),
		"rules_fired", len(out.Bundle.RulesFired),
	)
	fmt.Println(docPath)
	return nil
}

func readRunFile(path string) (*runFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run file: %w", err)
	}
	var rf runFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse run file %q: %w", path, err)
	}
	if rf.Answers == nil {
		rf.Answers = make(ast.AnswerMap)
	}
	return &rf, nil
}
