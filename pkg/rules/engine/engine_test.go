package engine

import (
	"reflect"
	"testing"

	"verity-hq/scrivener/pkg/wizard/ast"
)

func testProfile() *ast.FirmProfile {
	return &ast.FirmProfile{
		ID:          "firm-001",
		Name:        "Acme Advisors",
		Permissions: []string{"advising", "arranging"},
		ClientTypes: []string{"retail"},
		FirmRole:    ast.FirmRolePrincipal,
		FirmSize:    "small",
	}
}

func TestEngine_Evaluate_PEPScenario(t *testing.T) {
	rules := []*ast.Rule{
		{
			ID:       "r-base",
			Name:     "baseline retail cdd",
			Priority: 10,
			Action: ast.Action{
				IncludeClauses: []string{"aml_retail_cdd"},
				SetVariables: map[string]ast.Value{
					"approver_role": ast.String("SMF16"),
				},
			},
			Active: true,
		},
		{
			ID:       "r-pep",
			Name:     "domestic pep edd",
			Priority: 20,
			Condition: ast.Leaf("has_domestic_peps", ast.OperatorEquals, ast.Boolean(true)),
			Action: ast.Action{
				IncludeClauses: []string{"aml_edd_domestic_pep"},
				SetVariables: map[string]ast.Value{
					"approver_role": ast.String("SMF17"),
				},
			},
			Active: true,
		},
	}

	eng := New(nil)
	result := eng.Evaluate(rules, Input{
		PolicyID: "pol-001",
		Answers:  ast.AnswerMap{"has_domestic_peps": ast.Boolean(true)},
		Profile:  testProfile(),
	})

	wantIncluded := []string{"aml_retail_cdd", "aml_edd_domestic_pep"}
	if !reflect.DeepEqual(result.IncludedClauses, wantIncluded) {
		t.Errorf("IncludedClauses = %v, want %v", result.IncludedClauses, wantIncluded)
	}
	if got := result.Variables["approver_role"]; !got.Equal(ast.String("SMF17")) {
		t.Errorf("approver_role = %+v, want SMF17 (higher priority wins)", got)
	}
	if len(result.FiringLog) != 2 {
		t.Fatalf("FiringLog length = %d, want 2", len(result.FiringLog))
	}
	for i, firing := range result.FiringLog {
		if !firing.ConditionMet {
			t.Errorf("FiringLog[%d].ConditionMet = false, want true", i)
		}
	}
}

// TestEngine_Evaluate_ExclusionWins verifies reconciliation: a clause both
// included and excluded ends up out of the document, regardless of which
// rule ran first, and the excluded set is reported unchanged.
func TestEngine_Evaluate_ExclusionWins(t *testing.T) {
	tests := []struct {
		name            string
		includePriority int
		excludePriority int
	}{
		{name: "exclude after include", includePriority: 10, excludePriority: 20},
		{name: "exclude before include", includePriority: 20, excludePriority: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := []*ast.Rule{
				{
					Name:     "include it",
					Priority: tt.includePriority,
					Action:   ast.Action{IncludeClauses: []string{"contested", "kept"}},
					Active:   true,
				},
				{
					Name:     "exclude it",
					Priority: tt.excludePriority,
					Action:   ast.Action{ExcludeClauses: []string{"contested"}},
					Active:   true,
				},
			}

			result := New(nil).Evaluate(rules, Input{
				PolicyID: "pol-001",
				Answers:  ast.AnswerMap{},
				Profile:  testProfile(),
			})

			if result.IsIncluded("contested") {
				t.Error("contested clause survived reconciliation")
			}
			if !result.IsIncluded("kept") {
				t.Error("kept clause missing from included set")
			}
			if !result.IsExcluded("contested") {
				t.Error("excluded set lost the contested clause")
			}
		})
	}
}

func TestEngine_Evaluate_InactiveRulesSkipped(t *testing.T) {
	rules := []*ast.Rule{
		{Name: "active", Priority: 1, Action: ast.Action{IncludeClauses: []string{"a"}}, Active: true},
		{Name: "inactive", Priority: 2, Action: ast.Action{IncludeClauses: []string{"b"}}, Active: false},
	}

	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{},
		Profile: testProfile(),
	})

	if len(result.FiringLog) != 1 {
		t.Fatalf("FiringLog length = %d, want 1 (inactive rule must not appear)", len(result.FiringLog))
	}
	if result.IsIncluded("b") {
		t.Error("inactive rule's action was applied")
	}
}

// TestEngine_Evaluate_FiringLogRecordsMisses verifies every active rule
// gets a firing entry even when its condition does not match.
func TestEngine_Evaluate_FiringLogRecordsMisses(t *testing.T) {
	rules := []*ast.Rule{
		{
			Name:      "never matches",
			Priority:  1,
			Condition: ast.Leaf("q", ast.OperatorEquals, ast.String("no-such-answer")),
			Action:    ast.Action{IncludeClauses: []string{"x"}},
			Active:    true,
		},
	}

	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{"q": ast.String("other")},
		Profile: testProfile(),
	})

	if len(result.FiringLog) != 1 {
		t.Fatalf("FiringLog length = %d, want 1", len(result.FiringLog))
	}
	if result.FiringLog[0].ConditionMet {
		t.Error("ConditionMet = true, want false")
	}
	if len(result.IncludedClauses) != 0 {
		t.Errorf("IncludedClauses = %v, want empty", result.IncludedClauses)
	}
}

// TestEngine_Evaluate_ProfileFallback verifies question codes without
// answers resolve against the firm profile's attributes.
func TestEngine_Evaluate_ProfileFallback(t *testing.T) {
	rules := []*ast.Rule{
		{
			Name:      "principal firms",
			Priority:  1,
			Condition: ast.Leaf("firm_role", ast.OperatorEquals, ast.String(ast.FirmRolePrincipal)),
			Action:    ast.Action{IncludeClauses: []string{"ar_oversight"}},
			Active:    true,
		},
		{
			Name:      "advising permission",
			Priority:  2,
			Condition: ast.Leaf("permissions", ast.OperatorIncludes, ast.String("advising")),
			Action:    ast.Action{IncludeClauses: []string{"suitability"}},
			Active:    true,
		},
	}

	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{},
		Profile: testProfile(),
	})

	if !result.IsIncluded("ar_oversight") || !result.IsIncluded("suitability") {
		t.Errorf("IncludedClauses = %v, want both profile-driven clauses", result.IncludedClauses)
	}
}

// TestEngine_Evaluate_AnswerOverridesProfile verifies an explicit answer
// shadows the profile attribute of the same code.
func TestEngine_Evaluate_AnswerOverridesProfile(t *testing.T) {
	rules := []*ast.Rule{
		{
			Name:      "large firm",
			Priority:  1,
			Condition: ast.Leaf("firm_size", ast.OperatorEquals, ast.String("large")),
			Action:    ast.Action{IncludeClauses: []string{"governance_committee"}},
			Active:    true,
		},
	}

	// Profile says "small"; the answer overrides to "large".
	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{"firm_size": ast.String("large")},
		Profile: testProfile(),
	})

	if !result.IsIncluded("governance_committee") {
		t.Errorf("IncludedClauses = %v, want governance_committee", result.IncludedClauses)
	}
}

// TestEngine_Evaluate_Deterministic verifies repeated evaluation of the
// same input produces identical results.
func TestEngine_Evaluate_Deterministic(t *testing.T) {
	rules := []*ast.Rule{
		{Name: "a", Priority: 5, Action: ast.Action{IncludeClauses: []string{"c1", "c2"}}, Active: true},
		{Name: "b", Priority: 5, Action: ast.Action{IncludeClauses: []string{"c2", "c3"}, ExcludeClauses: []string{"c1"}}, Active: true},
		{Name: "c", Priority: 1, Action: ast.Action{SetVariables: map[string]ast.Value{"v": ast.Number(1)}}, Active: true},
	}
	in := Input{
		PolicyID: "pol-001",
		Answers:  ast.AnswerMap{"x": ast.String("y")},
		Profile:  testProfile(),
	}

	eng := New(nil)
	first := eng.Evaluate(rules, in)
	for i := 0; i < 5; i++ {
		got := eng.Evaluate(rules, in)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("evaluation %d differs:\ngot  %+v\nwant %+v", i, got, first)
		}
	}
}

func TestEngine_Evaluate_DedupePreservesOrder(t *testing.T) {
	rules := []*ast.Rule{
		{Name: "first", Priority: 1, Action: ast.Action{IncludeClauses: []string{"b", "a"}}, Active: true},
		{Name: "second", Priority: 2, Action: ast.Action{IncludeClauses: []string{"a", "c"}}, Active: true},
	}

	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{},
		Profile: testProfile(),
	})

	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(result.IncludedClauses, want) {
		t.Errorf("IncludedClauses = %v, want %v", result.IncludedClauses, want)
	}
}

func TestEngine_Evaluate_Suggestions(t *testing.T) {
	rules := []*ast.Rule{
		{
			Name:      "suggest gifts register",
			Priority:  1,
			Condition: ast.Leaf("accepts_gifts", ast.OperatorEquals, ast.Boolean(true)),
			Action: ast.Action{
				SuggestClauses: []ast.Suggestion{
					{ClauseCode: "gifts_register", Reason: "firm accepts gifts from clients"},
				},
			},
			Active: true,
		},
	}

	result := New(nil).Evaluate(rules, Input{
		Answers: ast.AnswerMap{"accepts_gifts": ast.Boolean(true)},
		Profile: testProfile(),
	})

	if len(result.Suggestions) != 1 {
		t.Fatalf("Suggestions length = %d, want 1", len(result.Suggestions))
	}
	if result.Suggestions[0].ClauseCode != "gifts_register" {
		t.Errorf("Suggestion code = %q, want gifts_register", result.Suggestions[0].ClauseCode)
	}
	if result.IsIncluded("gifts_register") {
		t.Error("suggestion must not select the clause by itself")
	}
}

func BenchmarkEvaluate(b *testing.B) {
	var rules []*ast.Rule
	for i := 0; i < 50; i++ {
		rules = append(rules, &ast.Rule{
			Name:     "rule",
			Priority: i,
			Condition: ast.All(
				ast.Leaf("business_type", ast.OperatorEquals, ast.String("retail_investment")),
				ast.Any(
					ast.Leaf("employee_count", ast.OperatorGreaterThan, ast.Number(10)),
					ast.Leaf("permissions", ast.OperatorIncludes, ast.String("advising")),
				),
			),
			Action: ast.Action{IncludeClauses: []string{"clause"}},
			Active: true,
		})
	}
	in := Input{
		Answers: ast.AnswerMap{
			"business_type":  ast.String("retail_investment"),
			"employee_count": ast.Number(25),
		},
		Profile: testProfile(),
	}
	eng := New(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Evaluate(rules, in)
	}
}
