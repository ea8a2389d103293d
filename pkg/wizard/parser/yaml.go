package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// File is a fully parsed library file. Any section may be empty;
// a library directory typically splits sections across several files.
type File struct {
	Policy    *ast.Policy
	Questions []*ast.Question
	Rules     []*ast.Rule
	Clauses   []*ast.Clause
	Profiles  []*ast.FirmProfile
}

// yamlFile is the raw shape a library file decodes into. Questions,
// clauses, and profiles decode directly through the ast yaml tags;
// rules pass through an intermediate form so the free-form condition
// tree can be validated while it is built.
type yamlFile struct {
	Policy    *ast.Policy        `yaml:"policy"`
	Questions []*ast.Question    `yaml:"questions"`
	Rules     []yamlRule         `yaml:"rules"`
	Clauses   []*ast.Clause      `yaml:"clauses"`
	Profiles  []*ast.FirmProfile `yaml:"profiles"`
}

type yamlRule struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Priority  int         `yaml:"priority"`
	Active    *bool       `yaml:"active"` // nil means active
	Condition interface{} `yaml:"condition"`
	Action    ast.Action  `yaml:"action"`
}

// ParseFile reads and parses a single library file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses library YAML. The source name is used in error
// messages only.
func ParseBytes(data []byte, source string) (*File, error) {
	var raw yamlFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, newParseError(source, "", "invalid YAML: %v", err)
	}

	file := &File{
		Policy:    raw.Policy,
		Questions: raw.Questions,
		Clauses:   raw.Clauses,
		Profiles:  raw.Profiles,
	}

	for i := range raw.Questions {
		q := raw.Questions[i]
		if q.Code == "" {
			return nil, newParseError(source, "questions", "question %d has no code", i)
		}
	}
	for i := range raw.Clauses {
		c := raw.Clauses[i]
		if c.Code == "" {
			return nil, newParseError(source, "clauses", "clause %d has no code", i)
		}
	}

	for i, yr := range raw.Rules {
		rule, err := buildRule(source, i, yr)
		if err != nil {
			return nil, err
		}
		file.Rules = append(file.Rules, rule)
	}
	return file, nil
}

func buildRule(source string, index int, yr yamlRule) (*ast.Rule, error) {
	name := yr.Name
	if name == "" {
		name = fmt.Sprintf("rule %d", index)
	}
	rule := &ast.Rule{
		ID:       yr.ID,
		Name:     yr.Name,
		Priority: yr.Priority,
		Action:   yr.Action,
		Active:   yr.Active == nil || *yr.Active,
	}
	if yr.Condition != nil {
		cond, err := buildCondition(source, name, yr.Condition)
		if err != nil {
			return nil, err
		}
		rule.Condition = cond
	}
	return rule, nil
}

// buildCondition transforms a raw YAML condition node into an
// ast.Condition. A node is either a composite (a map with exactly one
// of the keys "all", "any", or "not") or a simple comparison (a map
// with "question", "operator", and "value" keys).
func buildCondition(source, rule string, node interface{}) (*ast.Condition, error) {
	m, ok := asStringMap(node)
	if !ok {
		return nil, newParseError(source, "rules", "%s: condition must be a mapping, got %T", rule, node)
	}

	if children, present := m["all"]; present {
		return buildComposite(source, rule, ast.ConditionTypeAll, children)
	}
	if children, present := m["any"]; present {
		return buildComposite(source, rule, ast.ConditionTypeAny, children)
	}
	if child, present := m["not"]; present {
		inner, err := buildCondition(source, rule, child)
		if err != nil {
			return nil, err
		}
		return ast.Not(inner), nil
	}

	question, _ := m["question"].(string)
	if question == "" {
		return nil, newParseError(source, "rules", "%s: simple condition missing question code", rule)
	}
	opStr, _ := m["operator"].(string)
	op := ast.Operator(opStr)
	if !ast.KnownOperator(op) {
		return nil, newParseError(source, "rules", "%s: unknown operator %q", rule, opStr)
	}
	return ast.Leaf(question, op, ast.FromYAML(m["value"])), nil
}

func buildComposite(source, rule string, typ ast.ConditionType, node interface{}) (*ast.Condition, error) {
	items, ok := node.([]interface{})
	if !ok {
		return nil, newParseError(source, "rules", "%s: %s expects a list of conditions, got %T", rule, typ, node)
	}
	if len(items) == 0 {
		return nil, newParseError(source, "rules", "%s: %s must not be empty", rule, typ)
	}
	cond := &ast.Condition{Type: typ}
	for _, item := range items {
		child, err := buildCondition(source, rule, item)
		if err != nil {
			return nil, err
		}
		cond.Children = append(cond.Children, child)
	}
	return cond, nil
}

// asStringMap accepts both map shapes the yaml package can produce for
// an interface{} destination.
func asStringMap(node interface{}) (map[string]interface{}, bool) {
	switch m := node.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	}
	return nil, false
}
