// Package graph computes question visibility, answer validation, and
// completion progress for a wizard question set.
//
// Visibility cascades through the question dependency graph: a question is
// visible only when every depends_on entry is satisfied and the question it
// depends on is itself visible. All functions are pure; visibility is never
// derived from prior visibility state.
package graph
