package engine

import (
	"verity-hq/scrivener/pkg/wizard/ast"
)

// Input carries everything one rules evaluation needs.
type Input struct {
	// PolicyID identifies the policy being assembled.
	PolicyID string

	// Answers is the wizard answer snapshot.
	Answers ast.AnswerMap

	// Profile supplies firm-attribute defaults for question codes with no
	// entry in Answers.
	Profile *ast.FirmProfile
}

// Firing is one firing-log entry: a rule's name and whether its condition
// matched. Every active rule produces exactly one entry, in evaluation order.
type Firing struct {
	RuleName     string `json:"rule_name"`
	ConditionMet bool   `json:"condition_met"`
}

// Result is the accumulated, reconciled outcome of evaluating a rule set.
type Result struct {
	// IncludedClauses are clause codes selected for the document, in first
	// inclusion order, after reconciliation against the excluded set.
	IncludedClauses []string `json:"included_clauses"`

	// ExcludedClauses are clause codes excluded by matched rules, reported
	// unchanged by reconciliation.
	ExcludedClauses []string `json:"excluded_clauses"`

	// Suggestions are clause proposals for the compliance officer.
	Suggestions []ast.Suggestion `json:"suggestions"`

	// Variables is the merged template variable map. Collisions resolve
	// last-write-wins in evaluation order, so the highest-priority rule's
	// value is the one visible here.
	Variables map[string]ast.Value `json:"variables"`

	// FiringLog records every active rule evaluation in order.
	FiringLog []Firing `json:"firing_log"`
}

// IsIncluded reports whether code survived reconciliation.
func (r *Result) IsIncluded(code string) bool {
	for _, c := range r.IncludedClauses {
		if c == code {
			return true
		}
	}
	return false
}

// IsExcluded reports whether code was excluded by any matched rule.
func (r *Result) IsExcluded(code string) bool {
	for _, c := range r.ExcludedClauses {
		if c == code {
			return true
		}
	}
	return false
}
