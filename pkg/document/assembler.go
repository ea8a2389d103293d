package document

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"verity-hq/scrivener/pkg/audit"
	"verity-hq/scrivener/pkg/rules/engine"
	"verity-hq/scrivener/pkg/sanitize"
	"verity-hq/scrivener/pkg/template"
	"verity-hq/scrivener/pkg/wizard/ast"
)

// GenerationMeta identifies who generated a document and when.
type GenerationMeta struct {
	// GeneratedBy is the generator identity recorded in the audit bundle.
	GeneratedBy string

	// GeneratedAt is the generation timestamp. Zero means now.
	GeneratedAt time.Time

	// EffectiveDate is the policy effective date shown on the document.
	EffectiveDate time.Time
}

// Input carries everything one document generation needs. All fields are
// treated as read-only snapshots.
type Input struct {
	Run     *ast.Run
	Policy  *ast.Policy
	Profile *ast.FirmProfile
	Clauses []*ast.Clause

	// RulesResult is the already-evaluated rules engine result for the run.
	RulesResult *engine.Result

	Meta GenerationMeta

	// Sink receives the document blocks. Nil uses an in-memory BufferSink
	// whose bytes are returned in Output.DocumentBytes.
	Sink BlockSink
}

// Output is the result of one document generation.
type Output struct {
	// DocumentBytes is the rendered document when the default buffer sink
	// was used; nil when the caller supplied its own sink.
	DocumentBytes []byte

	// Bundle is the audit bundle for the run.
	Bundle *audit.Bundle

	// Filename is the deterministic document filename (no extension).
	Filename string

	// RenderWarnings counts template warnings surfaced while rendering
	// the selected clauses.
	RenderWarnings int
}

// Assembler orchestrates clause rendering, sanitization, and audit bundle
// generation. It holds no per-run state and is safe for concurrent use.
type Assembler struct {
	renderer  *template.Renderer
	sanitizer *sanitize.Sanitizer
	logger    *slog.Logger
}

// NewAssembler creates an assembler. Nil components fall back to defaults.
func NewAssembler(renderer *template.Renderer, sanitizer *sanitize.Sanitizer, logger *slog.Logger) *Assembler {
	if renderer == nil {
		renderer = template.NewRenderer(nil)
	}
	if sanitizer == nil {
		sanitizer = sanitize.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		renderer:  renderer,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Generate renders every included clause into the document sink and builds
// the audit bundle. It fails fast with UnknownClauseError when an included
// clause code has no clause in the library.
func (a *Assembler) Generate(in Input) (*Output, error) {
	byCode := make(map[string]*ast.Clause, len(in.Clauses))
	for _, c := range in.Clauses {
		byCode[c.Code] = c
	}

	selected := make([]*ast.Clause, 0, len(in.RulesResult.IncludedClauses))
	for _, code := range in.RulesResult.IncludedClauses {
		clause, ok := byCode[code]
		if !ok {
			return nil, &UnknownClauseError{Code: code}
		}
		selected = append(selected, clause)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].DisplayOrder < selected[j].DisplayOrder
	})

	generatedAt := in.Meta.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	buffer, sink := a.resolveSink(in.Sink)
	sink.SetMeta(Meta{
		FirmName:       in.Profile.Name,
		PolicyName:     in.Policy.Name,
		PolicyVersion:  in.Policy.Version,
		PrimaryColor:   in.Profile.PrimaryColor,
		SecondaryColor: in.Profile.SecondaryColor,
		DraftWatermark: in.Run.Status != ast.RunStatusApproved,
		EffectiveDate:  in.Meta.EffectiveDate,
	})

	ctx := template.NewContext(in.RulesResult.Variables, in.Run.Answers)
	renderWarnings := 0
	for _, clause := range selected {
		rendered, warnings := a.renderer.Render(clause.Body, ctx)
		renderWarnings += len(warnings)
		for _, w := range warnings {
			a.logger.Warn("clause template warning",
				"clause", clause.Code,
				"message", w.Message,
			)
		}

		sink.Heading(2, clause.Title)
		appendBlocks(sink, a.sanitizer.Sanitize(rendered))
	}

	bundle, err := a.buildBundle(in, generatedAt)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Bundle:         bundle,
		Filename:       Filename(in.Policy, generatedAt),
		RenderWarnings: renderWarnings,
	}
	if buffer != nil {
		out.DocumentBytes = buffer.Bytes()
	}

	a.logger.Info("document generated",
		"run_id", in.Run.ID,
		"policy_id", in.Policy.ID,
		"clauses", len(selected),
		"filename", out.Filename,
	)

	return out, nil
}

// resolveSink returns the sink to write to, plus the owned buffer when the
// caller did not supply one.
func (a *Assembler) resolveSink(sink BlockSink) (*BufferSink, BlockSink) {
	if sink != nil {
		return nil, sink
	}
	buffer := NewBufferSink()
	return buffer, buffer
}

// buildBundle constructs the audit bundle verbatim from the run snapshot
// and rules result: no recomputation, no additional filtering. Slices and
// maps are copied so the bundle stays frozen if the caller later mutates
// the run or result.
func (a *Assembler) buildBundle(in Input, generatedAt time.Time) (*audit.Bundle, error) {
	answers := make(ast.AnswerMap, len(in.Run.Answers))
	for k, v := range in.Run.Answers {
		answers[k] = v
	}
	variables := make(map[string]ast.Value, len(in.RulesResult.Variables))
	for k, v := range in.RulesResult.Variables {
		variables[k] = v
	}
	included := make([]string, len(in.RulesResult.IncludedClauses))
	copy(included, in.RulesResult.IncludedClauses)
	fired := make([]engine.Firing, len(in.RulesResult.FiringLog))
	copy(fired, in.RulesResult.FiringLog)

	bundle := &audit.Bundle{
		ID:              uuid.New().String(),
		RunID:           in.Run.ID,
		PolicyID:        in.Policy.ID,
		FirmName:        in.Profile.Name,
		Answers:         answers,
		IncludedClauses: included,
		RulesFired:      fired,
		Variables:       variables,
		GeneratedBy:     in.Meta.GeneratedBy,
		GeneratedAt:     generatedAt,
	}

	hash, err := audit.HashBundle(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to hash audit bundle: %w", err)
	}
	bundle.ContentHash = hash

	return bundle, nil
}

// Filename derives the deterministic document filename from the policy
// code, policy version, and generation date.
func Filename(policy *ast.Policy, generatedAt time.Time) string {
	return fmt.Sprintf("%s_v%s_%s", policy.Code, policy.Version, generatedAt.Format("2006-01-02"))
}

var (
	headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	orderedLineRe = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	bulletLineRe  = regexp.MustCompile(`^[-*]\s+(.*)$`)
)

// appendBlocks converts sanitized clause text into sink blocks: headings,
// blockquote callouts, ordered and unordered lists, and paragraphs.
func appendBlocks(sink BlockSink, text string) {
	lines := strings.Split(text, "\n")

	var paragraph []string
	flushParagraph := func() {
		if len(paragraph) > 0 {
			sink.Paragraph(strings.Join(paragraph, " "))
			paragraph = nil
		}
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			flushParagraph()
			i++

		case strings.HasPrefix(line, "> "):
			flushParagraph()
			var quoted []string
			for i < len(lines) {
				l := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(l, "> ") {
					break
				}
				quoted = append(quoted, strings.TrimPrefix(l, "> "))
				i++
			}
			sink.Blockquote(strings.Join(quoted, "\n"))

		case headingLineRe.MatchString(line):
			flushParagraph()
			m := headingLineRe.FindStringSubmatch(line)
			sink.Heading(len(m[1]), m[2])
			i++

		case orderedLineRe.MatchString(line):
			flushParagraph()
			var items []string
			for i < len(lines) {
				m := orderedLineRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					break
				}
				items = append(items, m[1])
				i++
			}
			sink.OrderedList(items)

		case bulletLineRe.MatchString(line):
			flushParagraph()
			var items []string
			for i < len(lines) {
				m := bulletLineRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
				if m == nil {
					break
				}
				items = append(items, m[1])
				i++
			}
			sink.BulletList(items)

		default:
			paragraph = append(paragraph, line)
			i++
		}
	}
	flushParagraph()
}
