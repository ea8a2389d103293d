package ast

// Clause is a unit of policy text, selected or rejected as a whole by the
// rules engine.
type Clause struct {
	// Code uniquely identifies the clause within a policy.
	Code string `yaml:"code" json:"code"`

	// Title is the section heading used in the assembled document.
	Title string `yaml:"title" json:"title"`

	// Body is the clause text: markdown with embedded template directives.
	Body string `yaml:"body" json:"body"`

	// Mandatory clauses are flagged for reviewers; the rules engine still
	// decides inclusion.
	Mandatory bool `yaml:"mandatory" json:"mandatory"`

	// DisplayOrder controls the clause's position in the document.
	DisplayOrder int `yaml:"display_order" json:"display_order"`
}

// Policy identifies a policy document type (e.g. an AML policy) and its
// version. The clause library and rule set are keyed to a policy.
type Policy struct {
	ID      string `yaml:"id" json:"id"`
	Code    string `yaml:"code" json:"code"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}
