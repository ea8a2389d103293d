package document

import "fmt"

// UnknownClauseError reports an included clause code with no clause in the
// supplied library. Assembly fails fast on this: a regulatory document must
// never silently omit selected content.
type UnknownClauseError struct {
	// Code is the missing clause code.
	Code string
}

// Error implements the error interface.
func (e *UnknownClauseError) Error() string {
	return fmt.Sprintf("unknown clause code %q: not present in clause library", e.Code)
}
