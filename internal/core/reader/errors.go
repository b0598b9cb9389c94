package reader

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a reader failure.
type ErrorCode string

const (
	CodePDFRead                 ErrorCode = "PDF_READ_ERROR"
	CodePDFBufferRead           ErrorCode = "PDF_BUFFER_READ_ERROR"
	CodeDocxRead                ErrorCode = "DOCX_READ_ERROR"
	CodeDocxBufferRead          ErrorCode = "DOCX_BUFFER_READ_ERROR"
	CodeTextRead                ErrorCode = "TEXT_READ_ERROR"
	CodeTextBufferRead          ErrorCode = "TEXT_BUFFER_READ_ERROR"
	CodeTextractRead            ErrorCode = "TEXTRACT_READ_ERROR"
	CodeTextractBufferRead      ErrorCode = "TEXTRACT_BUFFER_READ_ERROR"
	CodeUnsupportedFormat       ErrorCode = "UNSUPPORTED_FORMAT"
	CodeUnsupportedBufferFormat ErrorCode = "UNSUPPORTED_BUFFER_FORMAT"
	CodeValidation              ErrorCode = "VALIDATION_ERROR"
	CodeInvalidFilePath         ErrorCode = "INVALID_FILE_PATH"
	CodeRead                    ErrorCode = "READ_ERROR"
	CodeBufferRead              ErrorCode = "BUFFER_READ_ERROR"
	CodeMultiRead               ErrorCode = "MULTI_READ_ERROR"
	CodeMultiBufferRead         ErrorCode = "MULTI_BUFFER_READ_ERROR"
)

// Error is a classified reader failure. It is always surfaced to the
// caller and never re-wrapped by an outer boundary.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// classify returns err unchanged when it is already classified, otherwise
// wraps it with code, keeping the original message as suffix.
func classify(err error, code ErrorCode, prefix string) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s: %s", prefix, err.Error()),
		Err:     err,
	}
}

// CodeOf returns the classification of err, or "" when err is not a reader error.
func CodeOf(err error) ErrorCode {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCode reports whether err is a reader error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
