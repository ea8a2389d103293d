package ast

// QuestionType identifies the input control and value shape of a question.
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeNumber      QuestionType = "number"
	QuestionTypeBoolean     QuestionType = "boolean"
	QuestionTypeSelect      QuestionType = "select"
	QuestionTypeMultiSelect QuestionType = "multiselect"
)

// Validation describes the constraints applied to a question's answer.
// Min and Max apply to numeric questions only; nil means unbounded.
type Validation struct {
	Required bool     `yaml:"required" json:"required"`
	Min      *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Dependency gates a question's visibility on another question's answer.
// The question is only shown when the referenced answer equals ExpectedValue.
type Dependency struct {
	QuestionCode  string `yaml:"question_code" json:"question_code"`
	ExpectedValue Value  `yaml:"expected_value" json:"expected_value"`
}

// Question is one wizard question. Questions form a dependency graph keyed
// by code; the graph must be acyclic (caller responsibility).
type Question struct {
	// Code uniquely identifies the question within a question set.
	Code string `yaml:"code" json:"code"`

	// Text is the prompt shown to the user.
	Text string `yaml:"text" json:"text"`

	// Type determines the answer value shape.
	Type QuestionType `yaml:"type" json:"type"`

	// Validation holds the answer constraints.
	Validation Validation `yaml:"validation" json:"validation"`

	// DependsOn lists visibility dependencies. All entries must be
	// satisfied for the question to be visible (AND semantics).
	DependsOn []Dependency `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`

	// DisplayOrder controls the question's position in the wizard.
	DisplayOrder int `yaml:"display_order" json:"display_order"`
}
