package errors

import "strings"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError is a local poll/attachment rule violation. It blocks
// submission before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HydrationError means the edit source-fetch failed. The session stays inert
// until closed; Reason is the server-provided message when available.
type HydrationError struct {
	Reason string
}

func (e *HydrationError) Error() string {
	return e.Reason
}

// SubmissionError is a create/update rejected by the instance. Session state
// is preserved so the user can retry without re-entering data.
type SubmissionError struct {
	Reason string
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

// UploadError is one attachment's failed upload.
type UploadError struct {
	Index  int
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}

// UploadBatchError collects every failed upload of a submission attempt.
// Uploads settle independently; all failures are reported together.
type UploadBatchError struct {
	Failures []*UploadError
}

func (e *UploadBatchError) Error() string {
	reasons := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		reasons[i] = f.Reason
	}
	return strings.Join(reasons, "; ")
}
