package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/medflow/arztliste/pkg/i18n"
)

// Standard error types
var (
	ErrInputNotFound = errors.New("input not found")
	ErrDecode        = errors.New("decode error")
	ErrIO            = errors.New("io error")
	ErrValidation    = errors.New("validation error")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal server error")
)

// Error codes
const (
	CodeInputNotFound = "INPUT_NOT_FOUND"
	CodeDecode        = "DECODE_ERROR"
	CodeIO            = "IO_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeBadRequest    = "BAD_REQUEST"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Cause      error             `json:"-"`
	Message    string            `json:"message"`
	MessageKey string            `json:"-"` // i18n key for localization
	Params     map[string]string `json:"-"` // Parameters for i18n interpolation
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel kind and the underlying cause
func (e *AppError) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Localize returns a localized version of the error message
func (e *AppError) Localize(ctx context.Context) string {
	if e.MessageKey == "" {
		return e.Message
	}
	return i18n.TFromContext(ctx, e.MessageKey, e.Params)
}

// LocalizeWith returns a localized version using a specific localizer
func (e *AppError) LocalizeWith(l *i18n.Localizer) string {
	if e.MessageKey == "" {
		return e.Message
	}
	msg := l.T(e.MessageKey, e.Params)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// InputNotFound reports an input file that is missing, unreadable or not a regular file
func InputNotFound(path string, cause error) *AppError {
	params := map[string]string{"path": path}
	return &AppError{
		Err:        ErrInputNotFound,
		Cause:      cause,
		Code:       CodeInputNotFound,
		Message:    i18n.T("errors.input_not_found", params),
		MessageKey: "errors.input_not_found",
		Params:     params,
		StatusCode: http.StatusNotFound,
	}
}

// Decode reports malformed input content
func Decode(cause error) *AppError {
	return &AppError{
		Err:        ErrDecode,
		Cause:      cause,
		Code:       CodeDecode,
		Message:    i18n.T("errors.decode_failed"),
		MessageKey: "errors.decode_failed",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// IO reports a failure creating or writing output
func IO(path string, cause error) *AppError {
	params := map[string]string{"path": path}
	return &AppError{
		Err:        ErrIO,
		Cause:      cause,
		Code:       CodeIO,
		Message:    i18n.T("errors.io_failed", params),
		MessageKey: "errors.io_failed",
		Params:     params,
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       CodeValidation,
		Message:    "validation failed",
		MessageKey: "errors.validation_failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       CodeBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       CodeInternal,
		Message:    message,
		MessageKey: "errors.internal",
		StatusCode: http.StatusInternalServerError,
	}
}

// KindOf returns the error code of the first AppError in the chain,
// or CodeInternal for any other error.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
