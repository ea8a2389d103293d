package template

import (
	"log/slog"
	"strings"

	"verity-hq/scrivener/pkg/wizard/ast"
)

// DefaultMaxDepth bounds control-construct nesting during rendering.
// Authored clause templates nest two or three levels at most.
const DefaultMaxDepth = 32

// Renderer renders parsed templates against a context. A Renderer holds no
// per-render state and is safe for concurrent use.
type Renderer struct {
	// MaxDepth is the control-construct nesting ceiling. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	logger *slog.Logger
}

// NewRenderer creates a renderer. A nil logger falls back to slog.Default.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render parses and renders source against the context. Parse and render
// warnings are combined; rendering itself never fails.
func (r *Renderer) Render(source string, ctx *Context) (string, []Warning) {
	tpl, warnings := Parse(source)
	out, renderWarnings := r.RenderTemplate(tpl, ctx)
	return out, append(warnings, renderWarnings...)
}

// RenderTemplate renders an already-parsed template against the context.
func (r *Renderer) RenderTemplate(tpl *Template, ctx *Context) (string, []Warning) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	st := &renderState{maxDepth: maxDepth}
	var sb strings.Builder
	st.renderNodes(&sb, tpl.Nodes, ctx, 0)

	for _, w := range st.warnings {
		r.logger.Debug("template render warning", "message", w.Message)
	}
	return sb.String(), st.warnings
}

// renderState accumulates warnings for one render pass.
type renderState struct {
	maxDepth int
	warnings []Warning
}

func (st *renderState) warn(message string) {
	st.warnings = append(st.warnings, Warning{Offset: -1, Message: message})
}

func (st *renderState) renderNodes(sb *strings.Builder, nodes []*Node, ctx *Context, depth int) {
	if depth > st.maxDepth {
		st.warn("max nesting depth exceeded")
		return
	}

	for _, node := range nodes {
		switch node.Type {
		case NodeText:
			sb.WriteString(node.Text)

		case NodeInterp:
			sb.WriteString(ctx.Lookup(node.Path).Render())

		case NodeIf:
			if ctx.Lookup(node.Path).Truthy() {
				st.renderNodes(sb, node.Body, ctx, depth+1)
			}

		case NodeUnless:
			if !ctx.Lookup(node.Path).Truthy() {
				st.renderNodes(sb, node.Body, ctx, depth+1)
			}

		case NodeFor:
			collection := ctx.Lookup(node.Path)
			if collection.IsAbsent() {
				continue
			}
			if collection.Kind != ast.KindArray {
				st.warn("for loop over non-array path " + node.Path)
				continue
			}
			for _, elem := range collection.Arr {
				st.renderNodes(sb, node.Body, ctx.child(node.Item, elem), depth+1)
			}
		}
	}
}
