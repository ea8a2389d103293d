package engine

import (
	"testing"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// TestEvaluateOperator_AbsentSemantics pins down the absent-answer rules:
// equals is false, not_equals is true, everything else is false.
func TestEvaluateOperator_AbsentSemantics(t *testing.T) {
	tests := []struct {
		name    string
		op      ast.Operator
		operand ast.Value
		want    bool
	}{
		{name: "equals is false on absent", op: ast.OperatorEquals, operand: ast.String("x"), want: false},
		{name: "not_equals is true on absent", op: ast.OperatorNotEquals, operand: ast.String("x"), want: true},
		{name: "includes is false on absent", op: ast.OperatorIncludes, operand: ast.String("x"), want: false},
		{name: "greater_than is false on absent", op: ast.OperatorGreaterThan, operand: ast.Number(1), want: false},
		{name: "less_than is false on absent", op: ast.OperatorLessThan, operand: ast.Number(1), want: false},
		{name: "greater_or_equal is false on absent", op: ast.OperatorGreaterOrEqual, operand: ast.Number(1), want: false},
		{name: "less_or_equal is false on absent", op: ast.OperatorLessOrEqual, operand: ast.Number(1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateOperator(tt.op, ast.Absent(), tt.operand); got != tt.want {
				t.Errorf("evaluateOperator(%s, absent, %v) = %v, want %v", tt.op, tt.operand, got, tt.want)
			}
		})
	}
}

func TestEvaluateOperator(t *testing.T) {
	tests := []struct {
		name    string
		op      ast.Operator
		actual  ast.Value
		operand ast.Value
		want    bool
	}{
		{name: "equals strings", op: ast.OperatorEquals, actual: ast.String("retail"), operand: ast.String("retail"), want: true},
		{name: "equals mismatched strings", op: ast.OperatorEquals, actual: ast.String("retail"), operand: ast.String("wholesale"), want: false},
		{name: "equals booleans", op: ast.OperatorEquals, actual: ast.Boolean(true), operand: ast.Boolean(true), want: true},
		{name: "equals number vs numeric string", op: ast.OperatorEquals, actual: ast.Number(5), operand: ast.String("5"), want: true},

		{name: "not_equals mismatched", op: ast.OperatorNotEquals, actual: ast.String("a"), operand: ast.String("b"), want: true},
		{name: "not_equals matched", op: ast.OperatorNotEquals, actual: ast.String("a"), operand: ast.String("a"), want: false},

		{name: "includes member", op: ast.OperatorIncludes, actual: ast.Strings("advising", "dealing"), operand: ast.String("dealing"), want: true},
		{name: "includes non-member", op: ast.OperatorIncludes, actual: ast.Strings("advising"), operand: ast.String("dealing"), want: false},
		{name: "includes on scalar is false", op: ast.OperatorIncludes, actual: ast.String("advising"), operand: ast.String("advising"), want: false},
		{name: "includes on empty array", op: ast.OperatorIncludes, actual: ast.Array(), operand: ast.String("x"), want: false},

		{name: "greater_than true", op: ast.OperatorGreaterThan, actual: ast.Number(25), operand: ast.Number(10), want: true},
		{name: "greater_than equal is false", op: ast.OperatorGreaterThan, actual: ast.Number(10), operand: ast.Number(10), want: false},
		{name: "greater_than numeric string actual", op: ast.OperatorGreaterThan, actual: ast.String("25"), operand: ast.Number(10), want: true},
		{name: "greater_than non-numeric actual is false", op: ast.OperatorGreaterThan, actual: ast.String("many"), operand: ast.Number(10), want: false},
		{name: "greater_than non-numeric operand is false", op: ast.OperatorGreaterThan, actual: ast.Number(25), operand: ast.String("few"), want: false},

		{name: "less_than true", op: ast.OperatorLessThan, actual: ast.Number(3), operand: ast.Number(10), want: true},
		{name: "greater_or_equal at boundary", op: ast.OperatorGreaterOrEqual, actual: ast.Number(10), operand: ast.Number(10), want: true},
		{name: "less_or_equal at boundary", op: ast.OperatorLessOrEqual, actual: ast.Number(10), operand: ast.Number(10), want: true},

		{name: "unknown operator is false", op: ast.Operator("matches"), actual: ast.String("x"), operand: ast.String("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evaluateOperator(tt.op, tt.actual, tt.operand); got != tt.want {
				t.Errorf("evaluateOperator(%s, %v, %v) = %v, want %v", tt.op, tt.actual, tt.operand, got, tt.want)
			}
		})
	}
}
