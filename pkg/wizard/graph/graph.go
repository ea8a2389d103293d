package graph

import (
	"fmt"
	"math"
	"sort"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// IssueCode classifies a validation issue.
type IssueCode string

const (
	IssueRequired IssueCode = "REQUIRED"
	IssueMinValue IssueCode = "MIN_VALUE"
	IssueMaxValue IssueCode = "MAX_VALUE"
)

// Issue is one validation finding. Issues are data for the wizard to render
// inline, not errors.
type Issue struct {
	Field   string    `json:"field"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// VisibleQuestionCodes returns the set of currently visible question codes.
// A question is visible iff it has no dependencies, or every depends_on
// entry is satisfied (answer equals expected value) and the question it
// depends on is itself visible. The result is a pure function of the
// question list and the answer map.
func VisibleQuestionCodes(questions []*ast.Question, answers ast.AnswerMap) map[string]bool {
	byCode := make(map[string]*ast.Question, len(questions))
	for _, q := range questions {
		byCode[q.Code] = q
	}

	memo := make(map[string]bool, len(questions))

	var visible func(code string) bool
	visible = func(code string) bool {
		if v, ok := memo[code]; ok {
			return v
		}
		q, ok := byCode[code]
		if !ok {
			// Dependency on an unknown question can never be satisfied.
			memo[code] = false
			return false
		}
		// Questions are acyclic by contract; mark before recursing so a
		// malformed cyclic input terminates instead of recursing forever.
		memo[code] = false
		for _, dep := range q.DependsOn {
			if !visible(dep.QuestionCode) {
				return false
			}
			if !answers.Get(dep.QuestionCode).Equal(dep.ExpectedValue) {
				return false
			}
		}
		memo[code] = true
		return true
	}

	result := make(map[string]bool, len(questions))
	for _, q := range questions {
		if visible(q.Code) {
			result[q.Code] = true
		}
	}
	return result
}

// VisibleQuestions returns the visible questions sorted by display order.
func VisibleQuestions(questions []*ast.Question, answers ast.AnswerMap) []*ast.Question {
	codes := VisibleQuestionCodes(questions, answers)
	out := make([]*ast.Question, 0, len(codes))
	for _, q := range questions {
		if codes[q.Code] {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// Validate checks every currently visible question's answer and returns
// the findings. Hidden questions are never inspected.
func Validate(questions []*ast.Question, answers ast.AnswerMap) []Issue {
	var issues []Issue

	for _, q := range VisibleQuestions(questions, answers) {
		answer := answers.Get(q.Code)

		if q.Validation.Required && answer.IsEmpty() {
			issues = append(issues, Issue{
				Field:   q.Code,
				Code:    IssueRequired,
				Message: fmt.Sprintf("%s is required", q.Text),
			})
			continue
		}

		if q.Type != ast.QuestionTypeNumber || answer.IsEmpty() {
			continue
		}
		num, ok := answer.AsNumber()
		if !ok {
			continue
		}
		if q.Validation.Min != nil && num < *q.Validation.Min {
			issues = append(issues, Issue{
				Field:   q.Code,
				Code:    IssueMinValue,
				Message: fmt.Sprintf("%s must be at least %v", q.Text, *q.Validation.Min),
			})
		}
		if q.Validation.Max != nil && num > *q.Validation.Max {
			issues = append(issues, Issue{
				Field:   q.Code,
				Code:    IssueMaxValue,
				Message: fmt.Sprintf("%s must be at most %v", q.Text, *q.Validation.Max),
			})
		}
	}

	return issues
}

// Progress returns the completion percentage: answered visible questions
// over all visible questions, rounded to the nearest integer. Zero visible
// questions is defined as zero progress.
func Progress(questions []*ast.Question, answers ast.AnswerMap) int {
	visible := VisibleQuestions(questions, answers)
	if len(visible) == 0 {
		return 0
	}
	answered := 0
	for _, q := range visible {
		if !answers.Get(q.Code).IsEmpty() {
			answered++
		}
	}
	return int(math.Round(float64(answered) / float64(len(visible)) * 100))
}
