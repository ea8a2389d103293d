// Package template implements the restricted clause template language:
// dotted-path interpolation ({{ path.to.value }}), conditionals
// ({% if x %}...{% endif %}, {% unless x %}...{% endunless %}), and loops
// ({% for item in array %}...{% endfor %}).
//
// Templates are parsed once into an explicit AST and rendered by a tree
// walk. Parsing is lenient: malformed or unterminated control syntax is
// kept as literal text and reported as a warning, never an error; clause
// authors deliberately leave some text untemplated. Interpolating a missing
// path renders as the empty string.
package template
