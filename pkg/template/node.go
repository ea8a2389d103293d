package template

// NodeType identifies the kind of a template AST node.
type NodeType string

const (
	NodeText   NodeType = "text"   // literal text
	NodeInterp NodeType = "interp" // {{ path }}
	NodeIf     NodeType = "if"     // {% if path %}body{% endif %}
	NodeUnless NodeType = "unless" // {% unless path %}body{% endunless %}
	NodeFor    NodeType = "for"    // {% for item in path %}body{% endfor %}
)

// Node is one template AST node.
type Node struct {
	Type NodeType

	// Text is the literal content for NodeText.
	Text string

	// Path is the dotted context path for NodeInterp, NodeIf, and
	// NodeUnless, and the collection path for NodeFor.
	Path string

	// Item is the loop variable name for NodeFor.
	Item string

	// Body holds the child nodes of a control construct.
	Body []*Node
}

// Template is a parsed template ready for rendering.
type Template struct {
	// Source is the original template text.
	Source string

	// Nodes is the parsed AST.
	Nodes []*Node
}

// Warning reports a leniency event: control syntax that could not be parsed
// and was kept as literal text, or a render-time anomaly.
type Warning struct {
	// Offset is the byte offset into the template source, or -1 for
	// render-time warnings.
	Offset int

	// Message describes the problem.
	Message string
}
