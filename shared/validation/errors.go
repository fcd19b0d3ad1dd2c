package validation

import "errors"

// ErrInvalidMimeType is returned when a file has a MIME type the instance
// does not accept
var ErrInvalidMimeType = errors.New("invalid MIME type")

// ErrTooManyAttachments is returned when adding files would exceed the
// instance attachment limit
var ErrTooManyAttachments = errors.New("too many attachments")

// ErrUnknownMimeType is returned when a file's MIME type cannot be detected
var ErrUnknownMimeType = errors.New("could not detect MIME type")
