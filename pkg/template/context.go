package template

import (
	"strings"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// Context is the key/value scope a template renders against. Loop bodies
// render in a child scope that binds the loop variable and otherwise
// inherits the parent.
type Context struct {
	parent *Context
	values map[string]ast.Value
}

// NewContext builds a root context from rules-engine variables and raw
// answers. Variables take precedence over answers on key collision.
func NewContext(variables map[string]ast.Value, answers ast.AnswerMap) *Context {
	merged := make(map[string]ast.Value, len(variables)+len(answers))
	for k, v := range answers {
		merged[k] = v
	}
	for k, v := range variables {
		merged[k] = v
	}
	return &Context{values: merged}
}

// NewContextFromValues builds a context directly from a value map.
func NewContextFromValues(values map[string]ast.Value) *Context {
	merged := make(map[string]ast.Value, len(values))
	for k, v := range values {
		merged[k] = v
	}
	return &Context{values: merged}
}

// child creates a loop scope binding name to value.
func (c *Context) child(name string, value ast.Value) *Context {
	return &Context{
		parent: c,
		values: map[string]ast.Value{name: value},
	}
}

// Lookup resolves a dotted path. The first segment is resolved against the
// innermost scope that defines it; remaining segments descend into object
// fields. Any miss resolves to absent.
func (c *Context) Lookup(path string) ast.Value {
	segments := strings.Split(path, ".")

	value, ok := c.resolve(segments[0])
	if !ok {
		return ast.Absent()
	}
	for _, seg := range segments[1:] {
		value = value.Field(seg)
	}
	return value
}

// resolve finds a top-level name, walking outward through enclosing scopes.
func (c *Context) resolve(name string) (ast.Value, bool) {
	for scope := c; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, true
		}
	}
	return ast.Value{}, false
}
