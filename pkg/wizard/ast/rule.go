package ast

// Operator is a comparison operator in a rule condition leaf.
type Operator string

const (
	OperatorEquals         Operator = "equals"
	OperatorNotEquals      Operator = "not_equals"
	OperatorIncludes       Operator = "includes"
	OperatorGreaterThan    Operator = "greater_than"
	OperatorLessThan       Operator = "less_than"
	OperatorGreaterOrEqual Operator = "greater_or_equal"
	OperatorLessOrEqual    Operator = "less_or_equal"
)

// KnownOperator reports whether op is one of the supported operators.
func KnownOperator(op Operator) bool {
	switch op {
	case OperatorEquals, OperatorNotEquals, OperatorIncludes,
		OperatorGreaterThan, OperatorLessThan,
		OperatorGreaterOrEqual, OperatorLessOrEqual:
		return true
	}
	return false
}

// ConditionType identifies the shape of a condition node.
type ConditionType string

const (
	ConditionTypeSimple ConditionType = "simple" // question_code op operand
	ConditionTypeAll    ConditionType = "all"    // AND of children
	ConditionTypeAny    ConditionType = "any"    // OR of children
	ConditionTypeNot    ConditionType = "not"    // NOT of single child
)

// Condition is a node in a rule's boolean expression tree.
// Simple nodes compare one answer against an operand; composite nodes
// combine children with all/any/not semantics.
type Condition struct {
	Type ConditionType `json:"type"`

	// Simple condition fields.
	QuestionCode string   `json:"question_code,omitempty"`
	Operator     Operator `json:"operator,omitempty"`
	Operand      Value    `json:"operand,omitempty"`

	// Composite condition children.
	Children []*Condition `json:"children,omitempty"`
}

// Leaf builds a simple comparison condition.
func Leaf(questionCode string, op Operator, operand Value) *Condition {
	return &Condition{
		Type:         ConditionTypeSimple,
		QuestionCode: questionCode,
		Operator:     op,
		Operand:      operand,
	}
}

// All builds an AND condition over children.
func All(children ...*Condition) *Condition {
	return &Condition{Type: ConditionTypeAll, Children: children}
}

// Any builds an OR condition over children.
func Any(children ...*Condition) *Condition {
	return &Condition{Type: ConditionTypeAny, Children: children}
}

// Not builds a negation of a single child condition.
func Not(child *Condition) *Condition {
	return &Condition{Type: ConditionTypeNot, Children: []*Condition{child}}
}

// Suggestion proposes a clause for inclusion with a human-readable reason.
// Suggestions are surfaced to the compliance officer; they do not select
// the clause by themselves.
type Suggestion struct {
	ClauseCode string `yaml:"code" json:"code"`
	Reason     string `yaml:"reason" json:"reason"`
}

// Action is what a rule does when its condition is met. All fields are
// optional; an action may carry any combination of them.
type Action struct {
	// IncludeClauses are clause codes added to the included set.
	IncludeClauses []string `yaml:"include_clauses,omitempty" json:"include_clauses,omitempty"`

	// ExcludeClauses are clause codes added to the excluded set.
	// Exclusion always wins over inclusion after reconciliation.
	ExcludeClauses []string `yaml:"exclude_clauses,omitempty" json:"exclude_clauses,omitempty"`

	// SuggestClauses are clause suggestions with reasons.
	SuggestClauses []Suggestion `yaml:"suggest_clauses,omitempty" json:"suggest_clauses,omitempty"`

	// SetVariables merges values into the template variable map.
	SetVariables map[string]Value `yaml:"set_variables,omitempty" json:"set_variables,omitempty"`
}

// Rule guards an action behind a condition tree. Rules are evaluated in
// ascending priority order so that higher-priority rules win variable
// collisions (last write wins).
type Rule struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Priority  int        `json:"priority"`
	Condition *Condition `json:"condition,omitempty"`
	Action    Action     `json:"action"`
	Active    bool       `json:"active"`
}

// IsActive reports whether the rule participates in evaluation.
func (r *Rule) IsActive() bool {
	return r.Active
}
