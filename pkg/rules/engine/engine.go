package engine

import (
	"log/slog"
	"sort"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// Engine evaluates rule sets. It holds no per-run state; one Engine may be
// shared across any number of concurrent evaluations.
type Engine struct {
	logger *slog.Logger
}

// New creates a rules engine. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Evaluate runs the full rule set against the input and returns the
// accumulated, reconciled result.
//
// Rules are filtered to active ones and evaluated in ascending priority
// order (stable for equal priorities), so a higher-priority rule's
// variable writes land last and win collisions. Every evaluated rule is
// recorded in the firing log regardless of outcome. After all rules are
// processed, reconciliation removes every excluded code from the included
// set; the excluded set itself is reported unchanged.
func (e *Engine) Evaluate(rules []*ast.Rule, in Input) *Result {
	active := make([]*ast.Rule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive() {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	lookup := e.answerSource(in)

	result := &Result{
		IncludedClauses: []string{},
		ExcludedClauses: []string{},
		Suggestions:     []ast.Suggestion{},
		Variables:       make(map[string]ast.Value),
		FiringLog:       make([]Firing, 0, len(active)),
	}

	for _, rule := range active {
		met := evaluateCondition(rule.Condition, lookup)
		result.FiringLog = append(result.FiringLog, Firing{
			RuleName:     rule.Name,
			ConditionMet: met,
		})

		e.logger.Debug("rule evaluated",
			"policy_id", in.PolicyID,
			"rule", rule.Name,
			"priority", rule.Priority,
			"condition_met", met,
		)

		if !met {
			continue
		}

		mergeAction(result, rule.Action)
	}

	reconcile(result)

	e.logger.Info("rules evaluated",
		"policy_id", in.PolicyID,
		"rules_evaluated", len(active),
		"clauses_included", len(result.IncludedClauses),
		"clauses_excluded", len(result.ExcludedClauses),
		"suggestions", len(result.Suggestions),
	)

	return result
}

// answerSource composes the answer map with firm-attribute fallback:
// a question code with no answer entry resolves against the corresponding
// firm profile attribute, or absent when there is none.
func (e *Engine) answerSource(in Input) valueSource {
	return func(code string) ast.Value {
		if v, ok := in.Answers[code]; ok && !v.IsAbsent() {
			return v
		}
		return in.Profile.AttributeValue(code)
	}
}

// mergeAction folds one matched rule's action into the result. Clause codes
// are deduplicated preserving first-seen order; variable collisions
// overwrite, consistent with evaluation order.
func mergeAction(result *Result, action ast.Action) {
	for _, code := range action.IncludeClauses {
		if !containsString(result.IncludedClauses, code) {
			result.IncludedClauses = append(result.IncludedClauses, code)
		}
	}
	for _, code := range action.ExcludeClauses {
		if !containsString(result.ExcludedClauses, code) {
			result.ExcludedClauses = append(result.ExcludedClauses, code)
		}
	}
	result.Suggestions = append(result.Suggestions, action.SuggestClauses...)
	for key, value := range action.SetVariables {
		result.Variables[key] = value
	}
}

// reconcile removes every excluded code from the included set. Exclusion
// wins irrespective of rule order or priority.
func reconcile(result *Result) {
	if len(result.ExcludedClauses) == 0 {
		return
	}
	kept := result.IncludedClauses[:0]
	for _, code := range result.IncludedClauses {
		if !containsString(result.ExcludedClauses, code) {
			kept = append(kept, code)
		}
	}
	result.IncludedClauses = kept
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
