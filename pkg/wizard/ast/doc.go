// Package ast defines the data model for the policy document assembly
// pipeline: wizard answers, questions, selection rules, policy clauses,
// firm profiles, and runs.
//
// Answer and variable values are modelled as a tagged-union Value type
// (string | number | bool | array | object | absent) so that the rules
// engine and template renderer can pattern-match exhaustively instead of
// relying on runtime coercion of untyped maps.
package ast
