package docgram

import (
	"errors"
	"fmt"
)

// Application error codes. These map failure modes to per-candidate skip
// reasons in the pipeline and to exit behavior in the CLI.
const (
	EINVALID       = "invalid"               // malformed input or configuration
	ENOTFOUND      = "not_found"             // entity does not exist
	EUNAVAILABLE   = "unavailable"           // network or HTTP failure
	EINTERNAL      = "internal"              // unexpected internal error
	ERESOLUTION    = "resolution_failed"     // detail page has no resolvable artifact
	EEMPTY         = "empty_document"        // document has zero pages
	ECORRUPT       = "corrupt_document"      // document cannot be parsed
	EPUBLISHSTAGE  = "publish_stage_failed"  // remote staging call failed
	EPUBLISHCOMMIT = "publish_commit_failed" // remote commit call failed
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docgram error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
