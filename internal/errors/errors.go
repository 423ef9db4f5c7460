package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed error carried across layer boundaries. Code is the
// HTTP status an API surface should answer with; internal callers only
// look at the message and the wrapped cause.
type Error struct {
	Code  int    `json:"-"`
	Msg   string `json:"error"`
	Cause error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Cause.Error())
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Is matches typed errors by code and message so sentinel comparisons
// with errors.Is keep working after wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code && e.Msg == t.Msg
	}
	return false
}

func InvalidArg(name string) *Error {
	return Newf(http.StatusBadRequest, "invalid argument: %s", name)
}

// RootNotFound means the configured archive root does not exist or is
// not readable. The scan cannot proceed at all.
func RootNotFound(path string, cause error) *Error {
	return &Error{Code: http.StatusNotFound, Msg: fmt.Sprintf("archive root not found: %s", path), Cause: cause}
}

// FolderNotFound means a single conversation folder requested for
// detail re-fetch is gone.
func FolderNotFound(id string) *Error {
	return Newf(http.StatusNotFound, "conversation folder not found: %s", id)
}

// NotInboxDirectory marks a root whose very first folder yields no
// participants; the scanner reports the truncated result alongside it.
func NotInboxDirectory(path string) *Error {
	return Newf(http.StatusUnprocessableEntity, "directory does not look like an inbox export: %s", path)
}

func ScanFailed(cause error) *Error {
	return &Error{Code: http.StatusInternalServerError, Msg: "archive scan failed", Cause: cause}
}

func ConfigLoadFailed(cause error) *Error {
	return &Error{Code: http.StatusInternalServerError, Msg: "load config failed", Cause: cause}
}

var ErrNoArchiveRoot = New(http.StatusBadRequest, "no archive root configured")
