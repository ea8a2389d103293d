package engine

import (
	"verity-hq/scrivener/pkg/wizard/ast"
)

// valueSource resolves a question code to a value. The engine composes the
// answer map with firm-attribute fallback; EvaluateCondition uses the
// answer map alone.
type valueSource func(code string) ast.Value

// EvaluateCondition evaluates a condition tree against an answer map.
// It is a pure function with no side effects: absent keys follow the
// operator semantics in operators.go, composite nodes short-circuit, and
// malformed nodes evaluate to false.
func EvaluateCondition(cond *ast.Condition, answers ast.AnswerMap) bool {
	return evaluateCondition(cond, answers.Get)
}

// evaluateCondition walks the condition tree against a value source.
func evaluateCondition(cond *ast.Condition, lookup valueSource) bool {
	if cond == nil {
		// No condition means the rule always fires.
		return true
	}

	switch cond.Type {
	case ast.ConditionTypeSimple:
		return evaluateOperator(cond.Operator, lookup(cond.QuestionCode), cond.Operand)

	case ast.ConditionTypeAll:
		for _, child := range cond.Children {
			if !evaluateCondition(child, lookup) {
				return false
			}
		}
		return true

	case ast.ConditionTypeAny:
		for _, child := range cond.Children {
			if evaluateCondition(child, lookup) {
				return true
			}
		}
		return false

	case ast.ConditionTypeNot:
		if len(cond.Children) != 1 {
			return false
		}
		return !evaluateCondition(cond.Children[0], lookup)

	default:
		return false
	}
}
