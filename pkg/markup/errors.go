package markup

import (
	"encoding/xml"
	"fmt"
)

// SyntaxError reports a document which is not well-formed markup.
type SyntaxError struct {
	Line int
	Err  error
}

func newSyntaxError(line int, message string) *SyntaxError {
	return &SyntaxError{
		Line: line,
		Err:  &xml.SyntaxError{Msg: message, Line: line},
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed document: %s", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
