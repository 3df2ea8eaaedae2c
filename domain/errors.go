package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeExtractionError   = "EXTRACTION_ERROR"
	ErrCodeModelError        = "MODEL_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewExtractionError creates a text extraction error
func NewExtractionError(filename string, cause error) error {
	return NewDomainError(ErrCodeExtractionError, fmt.Sprintf("failed to extract text from file: %s", filename), cause)
}

// NewModelError creates an external model error
func NewModelError(message string, cause error) error {
	return NewDomainError(ErrCodeModelError, message, cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// ErrorCode extracts the domain error code from err, or "" if err is not
// a DomainError.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsClientError reports whether err should map to a 4xx-equivalent status.
func IsClientError(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeInvalidInput, ErrCodeExtractionError, ErrCodeUnsupportedFormat:
		return true
	}
	return false
}
