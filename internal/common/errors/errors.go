// Package errors provides standardized error handling for the token mixer API.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrCodeSchemaValidation     ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeStrategyInvalid      ErrorCode = "MERGE_STRATEGY_INVALID"
	ErrCodeBaseTokensMissing    ErrorCode = "BASE_TOKENS_MISSING"
	ErrCodeReferenceNotReady    ErrorCode = "REFERENCE_NOT_READY"
	ErrCodeOverrideFailed       ErrorCode = "OVERRIDE_FAILED"
	ErrCodeReferenceNotFound    ErrorCode = "REFERENCE_NOT_FOUND"
	ErrCodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeInsufficientInput    ErrorCode = "INSUFFICIENT_INPUT"
	ErrCodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStatusTransition     ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeSectionTypeUnknown   ErrorCode = "SECTION_TYPE_UNKNOWN"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps error codes onto HTTP response statuses.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidRequest, ErrCodeSchemaValidation, ErrCodeStrategyInvalid,
		ErrCodeBaseTokensMissing, ErrCodeReferenceNotReady, ErrCodeOverrideFailed,
		ErrCodeInsufficientInput, ErrCodeStatusTransition, ErrCodeSectionTypeUnknown:
		return http.StatusBadRequest
	case ErrCodeReferenceNotFound, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors

// NewInvalidRequestError flags a malformed request body.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaValidationError reports a request that failed schema validation.
// The individual violations are joined into the details string.
func NewSchemaValidationError(violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaValidation,
		Message:   "Request failed schema validation",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStrategyInvalidError reports an unusable merge strategy.
func NewStrategyInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStrategyInvalid,
		Message:   "Merge strategy is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReferenceNotFoundError reports an unresolvable reference id.
func NewReferenceNotFoundError(referenceID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeReferenceNotFound,
		Message:   "Reference not found",
		Details:   fmt.Sprintf("referenceId: %s", referenceID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError reports an unknown mixing session.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsufficientInputError reports too few usable references for analysis.
func NewInsufficientInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientInput,
		Message:   "Not enough ready references to analyze",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError wraps a failed reference-store operation.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Reference store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusTransitionError reports an illegal reference lifecycle move.
func NewStatusTransitionError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStatusTransition,
		Message:   "Illegal reference status transition",
		Details:   fmt.Sprintf("%s -> %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSectionTypeUnknownError reports a section type absent from the registry.
func NewSectionTypeUnknownError(sectionType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSectionTypeUnknown,
		Message:   "Unknown section type",
		Details:   fmt.Sprintf("sectionType: %s", sectionType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetErrorCategory returns the coarse category of an error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "STRATEGY") || strings.Contains(codeStr, "OVERRIDE") || strings.Contains(codeStr, "TOKENS"):
		return "MERGE"
	case strings.Contains(codeStr, "REFERENCE") || strings.Contains(codeStr, "SESSION"):
		return "STORE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "INPUT"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
