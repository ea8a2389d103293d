// Package parser loads wizard library files: YAML documents carrying the
// policy record, question set, selection rules, clause library, and firm
// profiles.
//
// Rule conditions are written as nested YAML maps (simple comparisons or
// all/any/not composites) and are transformed into ast.Condition trees
// with full validation; a malformed file fails with a ParseError naming
// the file and the problem.
package parser
