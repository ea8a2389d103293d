package sanitize

import (
	"strings"
	"testing"
)

func TestSanitize_Tables(t *testing.T) {
	s := New(nil)

	in := strings.Join([]string{
		"Escalation routes:",
		"| Role | Responsibility |",
		"| --- | --- |",
		"| MLRO | SAR filing |",
		"Next paragraph.",
	}, "\n")

	got := s.Sanitize(in)

	if strings.Contains(got, "| --- |") {
		t.Error("separator row survived")
	}
	if !strings.Contains(got, "> Role: Responsibility") {
		t.Errorf("header row not converted to callout:\n%s", got)
	}
	if !strings.Contains(got, "> MLRO: SAR filing") {
		t.Errorf("data row not converted to callout:\n%s", got)
	}
	// Callouts are set off by blank lines.
	if !strings.Contains(got, "SAR filing\n\nNext paragraph.") {
		t.Errorf("callout not followed by blank line:\n%s", got)
	}
}

func TestSanitize_ProceduralBulletsBecomeOrderedList(t *testing.T) {
	s := New(nil)

	in := strings.Join([]string{
		"- Verify the client's identity",
		"- Record the verification outcome",
		"- Escalate discrepancies to the MLRO",
	}, "\n")

	got := s.Sanitize(in)
	want := strings.Join([]string{
		"1. Verify the client's identity.",
		"2. Record the verification outcome.",
		"3. Escalate discrepancies to the MLRO.",
	}, "\n")
	if got != want {
		t.Errorf("Sanitize() =\n%s\nwant\n%s", got, want)
	}
}

func TestSanitize_NarrativeBulletsBecomeSentence(t *testing.T) {
	s := New(nil)

	in := strings.Join([]string{
		"- retail clients",
		"- professional clients",
		"- eligible counterparties",
	}, "\n")

	got := s.Sanitize(in)
	want := "retail clients, professional clients and eligible counterparties."
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestSanitize_MixedBulletsSplit(t *testing.T) {
	s := New(nil)

	// Two narrative, one procedural: narrative sentence then ordered list.
	in := strings.Join([]string{
		"- telephone orders",
		"- online orders",
		"- Record each order in the register",
	}, "\n")

	got := s.Sanitize(in)
	if !strings.Contains(got, "telephone orders and online orders.") {
		t.Errorf("narrative sentence missing:\n%s", got)
	}
	if !strings.Contains(got, "1. Record each order in the register.") {
		t.Errorf("procedural list missing:\n%s", got)
	}
}

func TestSanitize_StripBold(t *testing.T) {
	s := New(nil)

	got := s.Sanitize("The **MLRO** must file a **SAR** promptly.")
	want := "The MLRO must file a SAR promptly."
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestSanitize_TOCArtifacts(t *testing.T) {
	artifacts := strings.Join([]string{
		"Introduction3",
		"Scope and application7",
		"Risk assessment12",
	}, "\n")

	t.Run("threshold met strips all", func(t *testing.T) {
		got := New(nil).Sanitize("Real prose stays.\n" + artifacts)
		if strings.Contains(got, "Introduction3") || strings.Contains(got, "assessment12") {
			t.Errorf("artifacts survived:\n%s", got)
		}
		if !strings.Contains(got, "Real prose stays.") {
			t.Errorf("prose lost:\n%s", got)
		}
	})

	t.Run("below threshold leaves lines alone", func(t *testing.T) {
		got := New(nil).Sanitize("Real prose stays.\nIntroduction3")
		if !strings.Contains(got, "Introduction3") {
			t.Errorf("isolated candidate stripped:\n%s", got)
		}
	})

	t.Run("zero threshold disables", func(t *testing.T) {
		got := New(&Config{TOCArtifactThreshold: 0}).Sanitize(artifacts)
		if !strings.Contains(got, "Introduction3") {
			t.Errorf("stripping ran with threshold 0:\n%s", got)
		}
	})

	t.Run("sentences with trailing digits are safe", func(t *testing.T) {
		in := strings.Join([]string{
			"Records are retained under SYSC 9.1;",
			"see also DISP 1.9.",
			"Approved by SMF17", // "by" guard
			artifacts,
		}, "\n")
		got := New(nil).Sanitize(in)
		if !strings.Contains(got, "SYSC 9.1;") || !strings.Contains(got, "Approved by SMF17") {
			t.Errorf("legitimate lines stripped:\n%s", got)
		}
	})
}

func TestSanitize_FinalCleanup(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapse three blank lines",
			in:   "a\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "keep double blank line",
			in:   "a\n\n\nb",
			want: "a\n\n\nb",
		},
		{
			name: "inline glyphs become commas",
			in:   "online • branch • post",
			want: "online, branch, post",
		},
		{
			name: "colon spacing",
			in:   "Owner:MLRO",
			want: "Owner: MLRO",
		},
		{
			name: "trailing whitespace trimmed",
			in:   "line   ",
			want: "line",
		},
		{
			name: "glyph-only lines count as blank",
			in:   "a\n•\n•\n•\nb",
			want: "a\n\nb",
		},
		{
			name: "single glyph-only line is one blank",
			in:   "a\n•\nb",
			want: "a\n\nb",
		},
		{
			name: "trailing glyph leaves no trailing space",
			in:   "a •\nb",
			want: "a,\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSanitize_Idempotent verifies running the sanitizer on its own output
// changes nothing, for every shape of input it rewrites.
func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"Plain paragraph.\n\nAnother paragraph.",
		"| Role | Duty |\n| --- | --- |\n| MLRO | SAR filing |",
		"- Verify identity\n- Record outcome\n- Escalate to MLRO",
		"- retail clients\n- professional clients",
		"- online orders\n- Record each order",
		"The **MLRO** reviews: everything • always.",
		"Introduction3\nScope7\nRisk12\nReal prose.",
		"a\n\n\n\n\nb",
		"Owner:MLRO does reviews:Weekly",
		"a\n•\n•\n•\nb",
		"a •\nb",
		"•",
	}

	s := New(nil)
	for i, in := range inputs {
		once := s.Sanitize(in)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("input %d not idempotent:\nfirst:  %q\nsecond: %q", i, once, twice)
		}
	}
}
