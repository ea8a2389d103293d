// Package engine evaluates clause-selection rules against wizard answers
// and firm attributes.
//
// The engine filters to active rules, evaluates them in ascending priority
// order, records a firing log entry for every rule whether or not its
// condition matched, merges matched actions into an accumulating result,
// and finally reconciles the included set so that exclusion always wins.
//
// Evaluation is a pure function of its inputs: identical rules, answers,
// and firm attributes always yield an identical result.
package engine
