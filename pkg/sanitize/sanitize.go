package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// Config tunes the sanitizer's heuristics.
type Config struct {
	// TOCArtifactThreshold is the minimum number of candidate
	// table-of-contents fragments the whole document must contain before
	// any are stripped. Zero disables the heuristic entirely.
	TOCArtifactThreshold int
}

// DefaultConfig returns the default sanitizer configuration.
func DefaultConfig() *Config {
	return &Config{TOCArtifactThreshold: 3}
}

// Sanitizer normalizes rendered clause text. It holds no per-document
// state and is safe for concurrent use.
type Sanitizer struct {
	config *Config
}

// New creates a sanitizer. A nil config uses DefaultConfig.
func New(config *Config) *Sanitizer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Sanitizer{config: config}
}

// Sanitize normalizes rendered clause markdown into document prose.
func (s *Sanitizer) Sanitize(text string) string {
	text = convertTables(text)
	text = normalizeBulletRuns(text)
	text = stripBold(text)
	text = s.stripTOCArtifacts(text)
	text = finalCleanup(text)
	return text
}

var (
	tableRowRe  = regexp.MustCompile(`^\|.*\|$`)
	separatorRe = regexp.MustCompile(`^\|[\s\-:|]+\|$`)
	bulletRe    = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
	boldRe      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	tocTailRe   = regexp.MustCompile(`[A-Za-z]+[0-9]{1,3}$`)
	byWordRe    = regexp.MustCompile(`(?i)\bby\b`)
	glyphRe     = regexp.MustCompile(`\s*[•·]\s*`)
	colonRe     = regexp.MustCompile(`:([A-Za-z])`)
)

// convertTables turns markdown table rows into blockquote callouts.
// Separator rows are dropped; data rows have their cells joined with ": "
// and are surrounded by blank lines.
func convertTables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	afterCallout := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if tableRowRe.MatchString(trimmed) {
			if separatorRe.MatchString(trimmed) {
				continue
			}
			cells := splitCells(trimmed)
			if len(cells) == 0 {
				continue
			}
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, "> "+strings.Join(cells, ": "))
			afterCallout = true
			continue
		}

		if afterCallout && trimmed != "" {
			out = append(out, "")
		}
		afterCallout = false
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// splitCells splits a table row into trimmed, non-empty cells.
func splitCells(row string) []string {
	parts := strings.Split(strings.Trim(row, "|"), "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if cell := strings.TrimSpace(p); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// proceduralVerbs is the closed vocabulary of action verbs that mark a
// bullet item as procedural.
var proceduralVerbs = map[string]bool{
	"ensure":   true,
	"report":   true,
	"verify":   true,
	"obtain":   true,
	"maintain": true,
	"review":   true,
	"notify":   true,
	"complete": true,
	"submit":   true,
	"record":   true,
	"conduct":  true,
	"assess":   true,
	"document": true,
	"escalate": true,
	"retain":   true,
	"update":   true,
	"monitor":  true,
	"confirm":  true,
}

// normalizeBulletRuns rewrites each maximal run of bullet lines. A run
// whose procedural items outnumber its narrative items becomes an ordered
// list; otherwise narrative items merge into one prose sentence and any
// procedural items follow as a separate ordered list.
func normalizeBulletRuns(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, rewriteBulletRun(run)...)
		run = nil
	}

	for _, line := range lines {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			run = append(run, strings.TrimSpace(m[1]))
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

// rewriteBulletRun converts one bullet run into its normalized form.
func rewriteBulletRun(items []string) []string {
	var procedural, narrative []string
	for _, item := range items {
		if isProcedural(item) {
			procedural = append(procedural, item)
		} else {
			narrative = append(narrative, item)
		}
	}

	// Majority procedural: the whole run becomes one ordered list.
	if len(procedural) > len(narrative) {
		return numberItems(items)
	}

	var out []string
	if len(narrative) > 0 {
		out = append(out, narrativeSentence(narrative))
	}
	if len(procedural) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, numberItems(procedural)...)
	}
	return out
}

// isProcedural reports whether a bullet item's first word is in the
// procedural verb vocabulary.
func isProcedural(item string) bool {
	fields := strings.Fields(item)
	if len(fields) == 0 {
		return false
	}
	word := strings.ToLower(strings.Trim(fields[0], "*_.,:;"))
	return proceduralVerbs[word]
}

// numberItems renders items as an ordered list.
func numberItems(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strconv.Itoa(i+1) + ". " + strings.TrimRight(item, " .") + "."
	}
	return out
}

// narrativeSentence merges narrative items into a single prose sentence:
// comma-joined, last item joined with "and", one trailing period.
func narrativeSentence(items []string) string {
	trimmed := make([]string, len(items))
	for i, item := range items {
		trimmed[i] = strings.TrimRight(strings.TrimSpace(item), " .")
	}
	switch len(trimmed) {
	case 1:
		return trimmed[0] + "."
	default:
		return strings.Join(trimmed[:len(trimmed)-1], ", ") + " and " + trimmed[len(trimmed)-1] + "."
	}
}

// stripBold removes bold markers, keeping the content.
func stripBold(text string) string {
	return boldRe.ReplaceAllString(text, "$1")
}

// stripTOCArtifacts removes leaked table-of-contents fragments. A line is a
// candidate when it has no colon, no "by", does not end in sentence
// punctuation, and ends with a letter run immediately followed by one to
// three digits. Candidates are only stripped when the whole document has at
// least the configured threshold of them; isolated matches are left alone.
func (s *Sanitizer) stripTOCArtifacts(text string) string {
	threshold := s.config.TOCArtifactThreshold
	if threshold <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	candidates := 0
	for _, line := range lines {
		if isTOCArtifact(line) {
			candidates++
		}
	}
	if candidates < threshold {
		return text
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !isTOCArtifact(line) {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func isTOCArtifact(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, ":") {
		return false
	}
	if byWordRe.MatchString(trimmed) {
		return false
	}
	if strings.ContainsAny(trimmed[len(trimmed)-1:], ".!?;") {
		return false
	}
	return tocTailRe.MatchString(trimmed)
}

// finalCleanup collapses excess blank lines, normalizes stray inline bullet
// glyphs into comma separation, and ensures a space follows any colon
// immediately followed by a letter.
func finalCleanup(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line != "" {
			// Rewrite before classifying blankness: a line holding only
			// a bullet glyph must count as blank, not as empty content.
			line = glyphRe.ReplaceAllString(line, ", ")
			line = strings.TrimPrefix(line, ", ")
			line = colonRe.ReplaceAllString(line, ": $1")
			line = strings.TrimRight(line, " \t")
		}
		if line == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			// Three or more consecutive blank lines collapse to one.
			if blanks >= 3 {
				blanks = 1
			}
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
			blanks = 0
		}
		out = append(out, line)
	}
	// Preserve at most one trailing blank line.
	if blanks > 0 {
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}
