package template

import (
	"strings"
	"testing"

	"verity-hq/scrivener/pkg/wizard/ast"
)

func TestRenderer_Render(t *testing.T) {
	vars := map[string]ast.Value{
		"firm_name":     ast.String("Acme Advisors"),
		"approver_role": ast.String("SMF17"),
		"has_peps":      ast.Boolean(true),
		"is_outsourced": ast.Boolean(false),
		"channels":      ast.Strings("online", "branch"),
		"review_days":   ast.Number(30),
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "interpolation",
			src:  "Approved by {{ approver_role }}.",
			want: "Approved by SMF17.",
		},
		{
			name: "absent variable renders empty",
			src:  "Firm: {{ firm_name }}, Missing: {{ missing_var }}",
			want: "Firm: Acme Advisors, Missing: ",
		},
		{
			name: "number interpolation",
			src:  "Review every {{ review_days }} days.",
			want: "Review every 30 days.",
		},
		{
			name: "if true keeps body",
			src:  "{% if has_peps %}Enhanced due diligence applies.{% endif %}",
			want: "Enhanced due diligence applies.",
		},
		{
			name: "if false drops body",
			src:  "{% if is_outsourced %}Outsourcing controls apply.{% endif %}",
			want: "",
		},
		{
			name: "if absent drops body",
			src:  "{% if not_a_var %}never{% endif %}",
			want: "",
		},
		{
			name: "unless inverts",
			src:  "{% unless is_outsourced %}All functions are performed in-house.{% endunless %}",
			want: "All functions are performed in-house.",
		},
		{
			name: "for loop binds item",
			src:  "{% for ch in channels %}- {{ ch }}\n{% endfor %}",
			want: "- online\n- branch\n",
		},
		{
			name: "for over absent renders nothing",
			src:  "{% for x in nothing %}- {{ x }}{% endfor %}",
			want: "",
		},
		{
			name: "nested if in for",
			src:  "{% for ch in channels %}{% if has_peps %}{{ ch }};{% endif %}{% endfor %}",
			want: "online;branch;",
		},
	}

	r := NewRenderer(nil)
	ctx := NewContextFromValues(vars)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warnings := r.Render(tt.src, ctx)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if len(warnings) != 0 {
				t.Errorf("warnings = %v, want none", warnings)
			}
		})
	}
}

// TestRenderer_Render_LoopScope verifies the loop variable shadows an outer
// binding inside the body and is gone after the loop.
func TestRenderer_Render_LoopScope(t *testing.T) {
	ctx := NewContextFromValues(map[string]ast.Value{
		"item":  ast.String("outer"),
		"items": ast.Strings("a", "b"),
	})

	got, _ := NewRenderer(nil).Render("{% for item in items %}{{ item }}{% endfor %}{{ item }}", ctx)
	if got != "abouter" {
		t.Errorf("Render() = %q, want %q", got, "abouter")
	}
}

func TestRenderer_Render_ForOverScalarWarns(t *testing.T) {
	ctx := NewContextFromValues(map[string]ast.Value{
		"role": ast.String("MLRO"),
	})

	got, warnings := NewRenderer(nil).Render("{% for r in role %}{{ r }}{% endfor %}", ctx)
	if got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "non-array") {
		t.Errorf("warnings = %v, want one non-array warning", warnings)
	}
}

// TestRenderer_Render_MalformedStaysLiteral verifies the leniency property
// end to end: malformed syntax appears verbatim in the output.
func TestRenderer_Render_MalformedStaysLiteral(t *testing.T) {
	ctx := NewContextFromValues(map[string]ast.Value{
		"firm_name": ast.String("Acme"),
	})

	src := "{% if broken syntax here %}Text with {{ firm_name }}."
	got, warnings := NewRenderer(nil).Render(src, ctx)
	want := "{% if broken syntax here %}Text with Acme."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if len(warnings) == 0 {
		t.Error("want at least one warning for malformed tag")
	}
}

func TestRenderer_Render_DepthCeiling(t *testing.T) {
	// Build nesting deeper than the ceiling.
	depth := 5
	src := ""
	for i := 0; i < depth; i++ {
		src += "{% if flag %}"
	}
	src += "core"
	for i := 0; i < depth; i++ {
		src += "{% endif %}"
	}

	r := NewRenderer(nil)
	r.MaxDepth = 3
	ctx := NewContextFromValues(map[string]ast.Value{"flag": ast.Boolean(true)})

	got, warnings := r.Render(src, ctx)
	if got != "" {
		t.Errorf("Render() = %q, want empty at depth ceiling", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "depth") {
		t.Errorf("warnings = %v, want one depth warning", warnings)
	}
}

func TestContext_Lookup(t *testing.T) {
	ctx := NewContext(
		map[string]ast.Value{
			"approver_role": ast.String("SMF17"),
			"firm": ast.Object(map[string]ast.Value{
				"name": ast.String("Acme"),
				"address": ast.Object(map[string]ast.Value{
					"city": ast.String("London"),
				}),
			}),
		},
		ast.AnswerMap{
			"approver_role": ast.String("from-answers"),
			"business_type": ast.String("retail_investment"),
		},
	)

	tests := []struct {
		name string
		path string
		want ast.Value
	}{
		{name: "variable wins collision", path: "approver_role", want: ast.String("SMF17")},
		{name: "answer visible", path: "business_type", want: ast.String("retail_investment")},
		{name: "dotted path", path: "firm.name", want: ast.String("Acme")},
		{name: "deep dotted path", path: "firm.address.city", want: ast.String("London")},
		{name: "missing top level", path: "nope", want: ast.Absent()},
		{name: "missing field", path: "firm.nope", want: ast.Absent()},
		{name: "field of scalar", path: "approver_role.x", want: ast.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.Lookup(tt.path); !got.Equal(tt.want) {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	src := `{{ firm_name }} applies due diligence to every client.
{% if has_peps %}Enhanced checks apply to {{ approver_role }} sign-off.{% endif %}
{% for c in channels %}Channel {{ c }} is reviewed every {{ review_days }} days.
{% endfor %}`
	ctx := NewContextFromValues(map[string]ast.Value{
		"firm_name":     ast.String("Acme Advisors"),
		"approver_role": ast.String("SMF17"),
		"has_peps":      ast.Boolean(true),
		"channels":      ast.Strings("online", "branch", "intermediated"),
		"review_days":   ast.Number(30),
	})
	r := NewRenderer(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(src, ctx)
	}
}
