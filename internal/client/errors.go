package client

import (
	"fmt"
	"sort"
	"strings"
)

// submitFallback is shown when the backend rejects a submission without
// any usable description.
const submitFallback = "Failed to place/update order. Please try again."

// ValidationError reports client-side field checks that failed before
// any network call was made. The request is never sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// SubmissionError reports a call that completed but was rejected by the
// backend. Fields carries field-level messages when the backend
// returned them; Description is always usable for display.
type SubmissionError struct {
	Description string
	Fields      map[string][]string
}

func (e *SubmissionError) Error() string { return e.Description }

// NetworkError wraps a transport failure: the call itself never
// completed. Cart and serving-info state are untouched so the caller
// can retry without re-entering anything.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// submissionError builds a SubmissionError from the response envelope's
// error payload, preferring responseDescription, then message, then the
// hardcoded fallback.
func submissionError(apiErr *apiError) *SubmissionError {
	out := &SubmissionError{Description: submitFallback}
	if apiErr == nil {
		return out
	}
	if len(apiErr.Errors) > 0 {
		out.Fields = apiErr.Errors
	}
	if apiErr.ResponseDescription != "" {
		out.Description = apiErr.ResponseDescription
	} else if apiErr.Message != "" {
		out.Description = apiErr.Message
	}
	return out
}
