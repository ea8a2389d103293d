package parser

import "fmt"

// ParseError reports a problem in a library file.
type ParseError struct {
	// Source is the file path or logical source name.
	Source string

	// Section is the library section the problem was found in
	// ("questions", "rules", "clauses", "profiles", "policy").
	Section string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Section, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func newParseError(source, section, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Source:  source,
		Section: section,
		Message: fmt.Sprintf(format, args...),
	}
}
