package library

import (
	"fmt"

	"verity-hq/scrivener/pkg/template"
	"verity-hq/scrivener/pkg/wizard/ast"
)

// Problem is one lint finding: a referential or template issue that
// would surface as silent misbehavior at generation time.
type Problem struct {
	// Where names the library object the problem was found in,
	// e.g. `rule "pep_controls"` or `clause "aml_edd_domestic_pep"`.
	Where string

	// Message describes the problem.
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Where, p.Message)
}

// Lint checks the library for dangling references and reportable
// template syntax in clause bodies. An empty result means the library
// is internally consistent; it says nothing about rule semantics.
func (l *Library) Lint() []Problem {
	var problems []Problem

	for _, q := range l.Questions {
		where := fmt.Sprintf("question %q", q.Code)
		for _, dep := range q.DependsOn {
			if l.QuestionByCode(dep.QuestionCode) == nil {
				problems = append(problems, Problem{
					Where:   where,
					Message: fmt.Sprintf("depends on unknown question %q", dep.QuestionCode),
				})
			}
		}
	}

	for _, r := range l.Rules {
		where := fmt.Sprintf("rule %q", r.Name)
		problems = append(problems, l.lintCondition(where, r.Condition)...)
		for _, code := range r.Action.IncludeClauses {
			problems = append(problems, l.lintClauseRef(where, "includes", code)...)
		}
		for _, code := range r.Action.ExcludeClauses {
			problems = append(problems, l.lintClauseRef(where, "excludes", code)...)
		}
		for _, s := range r.Action.SuggestClauses {
			problems = append(problems, l.lintClauseRef(where, "suggests", s.ClauseCode)...)
		}
	}

	for _, c := range l.Clauses {
		where := fmt.Sprintf("clause %q", c.Code)
		_, warnings := template.Parse(c.Body)
		for _, w := range warnings {
			problems = append(problems, Problem{
				Where:   where,
				Message: fmt.Sprintf("template: %s (offset %d)", w.Message, w.Offset),
			})
		}
	}

	return problems
}

func (l *Library) lintClauseRef(where, verb, code string) []Problem {
	if l.ClauseByCode(code) != nil {
		return nil
	}
	return []Problem{{
		Where:   where,
		Message: fmt.Sprintf("%s unknown clause %q", verb, code),
	}}
}

// lintCondition flags simple conditions referencing codes that are
// neither questions nor firm profile attributes.
func (l *Library) lintCondition(where string, cond *ast.Condition) []Problem {
	if cond == nil {
		return nil
	}
	if cond.Type == ast.ConditionTypeSimple {
		if l.QuestionByCode(cond.QuestionCode) == nil && !knownAttribute(cond.QuestionCode) {
			return []Problem{{
				Where:   where,
				Message: fmt.Sprintf("condition references unknown question %q", cond.QuestionCode),
			}}
		}
		return nil
	}
	var problems []Problem
	for _, child := range cond.Children {
		problems = append(problems, l.lintCondition(where, child)...)
	}
	return problems
}

func knownAttribute(code string) bool {
	switch code {
	case ast.AttrPermissions, ast.AttrClientTypes, ast.AttrChannels,
		ast.AttrFirmRole, ast.AttrFirmSize, ast.AttrOutsourcing:
		return true
	}
	return false
}
