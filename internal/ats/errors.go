package ats

import "fmt"

// ExtractionError means the upload could not be turned into text: it is not
// a PDF, the PDF is corrupt, or it carries no text layer.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "pdf extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// InputError rejects a request before extraction is attempted.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
