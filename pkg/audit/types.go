package audit

import (
	"context"
	"io"
	"time"

	"verity-hq/scrivener/pkg/rules/engine"
	"verity-hq/scrivener/pkg/wizard/ast"
)

// Bundle is the regulator-facing audit record for one finished run.
// It is immutable once generated and round-trips through JSON without loss.
type Bundle struct {
	// ID is the bundle's own identifier (UUID v4).
	ID string `json:"id"`

	// RunID identifies the wizard session this bundle records.
	RunID string `json:"run_id"`

	// PolicyID identifies the assembled policy.
	PolicyID string `json:"policy_id"`

	// FirmName is the firm the document was generated for.
	FirmName string `json:"firm_name"`

	// Answers is the full answer snapshot.
	Answers ast.AnswerMap `json:"answers"`

	// IncludedClauses are the clause codes in the final document.
	IncludedClauses []string `json:"included_clauses"`

	// RulesFired is the complete firing log, in evaluation order.
	RulesFired []engine.Firing `json:"rules_fired"`

	// Variables is the merged variable map.
	Variables map[string]ast.Value `json:"variables"`

	// GeneratedBy identifies who triggered generation.
	GeneratedBy string `json:"generated_by"`

	// GeneratedAt is when the document was generated.
	GeneratedAt time.Time `json:"generated_at"`

	// ContentHash is the SHA-256 hash of the bundle content (computed with
	// this field empty), recorded for tamper evidence.
	ContentHash string `json:"content_hash"`
}

// Query defines filter parameters for querying stored bundles.
type Query struct {
	// Time range on GeneratedAt, inclusive.
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`

	// Filters.
	ID       string `json:"id,omitempty"`
	RunID    string `json:"run_id,omitempty"`
	PolicyID string `json:"policy_id,omitempty"`
	FirmName string `json:"firm_name,omitempty"`

	// Pagination.
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Storage is the interface audit-bundle backends implement.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a bundle.
	Store(ctx context.Context, bundle *Bundle) error

	// Query retrieves bundles matching the filters, newest first.
	// Returns an empty slice when nothing matches.
	Query(ctx context.Context, query *Query) ([]*Bundle, error)

	// Count returns the number of bundles matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes bundles matching the filters and returns how many
	// were removed. Used by retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}

// Exporter writes bundles to an output format.
type Exporter interface {
	// Export writes bundles to w in the exporter's format.
	Export(ctx context.Context, bundles []*Bundle, w io.Writer) error
}
