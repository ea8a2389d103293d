package engine

import (
	"verity-hq/scrivener/pkg/wizard/ast"
)

// evaluateOperator evaluates one comparison between a stored answer value
// and a rule operand. Malformed comparisons evaluate to false rather than
// erroring so that one rule's bad data never aborts evaluation of the rest.
func evaluateOperator(op ast.Operator, actual, operand ast.Value) bool {
	switch op {
	case ast.OperatorEquals:
		return evaluateEquals(actual, operand)

	case ast.OperatorNotEquals:
		return evaluateNotEquals(actual, operand)

	case ast.OperatorIncludes:
		return evaluateIncludes(actual, operand)

	case ast.OperatorGreaterThan:
		a, b, ok := toNumeric(actual, operand)
		return ok && a > b

	case ast.OperatorLessThan:
		a, b, ok := toNumeric(actual, operand)
		return ok && a < b

	case ast.OperatorGreaterOrEqual:
		a, b, ok := toNumeric(actual, operand)
		return ok && a >= b

	case ast.OperatorLessOrEqual:
		a, b, ok := toNumeric(actual, operand)
		return ok && a <= b

	default:
		return false
	}
}

// evaluateEquals checks deep equality. An absent answer never equals any
// operand.
func evaluateEquals(actual, operand ast.Value) bool {
	if actual.IsAbsent() {
		return false
	}
	return actual.Equal(operand)
}

// evaluateNotEquals is the negation of equals, except that an absent answer
// is not-equal to any operand ("undefined is never the operand").
func evaluateNotEquals(actual, operand ast.Value) bool {
	if actual.IsAbsent() {
		return true
	}
	return !actual.Equal(operand)
}

// evaluateIncludes checks array membership. A non-array answer never
// includes anything.
func evaluateIncludes(actual, operand ast.Value) bool {
	return actual.Contains(operand)
}

// toNumeric coerces both sides to numbers. Either side failing to coerce
// makes the comparison false.
func toNumeric(actual, operand ast.Value) (float64, float64, bool) {
	a, ok := actual.AsNumber()
	if !ok {
		return 0, 0, false
	}
	b, ok := operand.AsNumber()
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}
