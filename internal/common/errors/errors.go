// Package errors provides standardized error handling for the asset
// qualification workflow, including conversion to BPMN errors.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeScoreValidationFailed ErrorCode = "SCORE_VALIDATION_FAILED"
	ErrCodeRegistryMisconfigured ErrorCode = "REGISTRY_MISCONFIGURED"

	ErrCodeUnauthorizedReviewer ErrorCode = "UNAUTHORIZED_REVIEWER"
	ErrCodeAuthCheckFailed      ErrorCode = "AUTH_CHECK_FAILED"

	ErrCodeAssetNotFound          ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeAssetUpdateFailed      ErrorCode = "ASSET_UPDATE_FAILED"
	ErrCodeBreakdownDecodeFailed  ErrorCode = "BREAKDOWN_DECODE_FAILED"
	ErrCodeDatabaseConnectionLost ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeAuditIndexFailed       ErrorCode = "AUDIT_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// NewScoreValidationError creates a non-retryable validation error carrying
// the missing category names. The workflow routes it back to the scoring
// form; nothing is computed or persisted.
func NewScoreValidationError(missingCategories []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoreValidationFailed,
		Message:   "Every category must be scored before saving",
		Details:   fmt.Sprintf("missing scores for: %s", strings.Join(missingCategories, ", ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"missingCategories": missingCategories},
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryMisconfiguredError flags a configuration defect (unknown
// category or red flag id). Non-retryable; this is a deploy problem.
func NewRegistryMisconfiguredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryMisconfigured,
		Message:   "Scoring registry misconfiguration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnauthorizedReviewerError creates a non-retryable authorization error.
// No data is modified when this is returned.
func NewUnauthorizedReviewerError(reviewerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorizedReviewer,
		Message:   "Reviewer is not authorized to persist scoring decisions",
		Details:   fmt.Sprintf("reviewerId: %s", reviewerID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthCheckFailedError creates a retryable error for an unreachable
// identity provider.
func NewAuthCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthCheckFailed,
		Message:   "Authorization check could not be completed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssetNotFoundError creates a non-retryable lookup error.
func NewAssetNotFoundError(assetID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetNotFound,
		Message:   "Asset not found",
		Details:   fmt.Sprintf("assetId: %s", assetID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssetUpdateFailedError creates a retryable persistence error. The edit
// state lives in workflow variables, so a retry re-runs the write without
// re-entry.
func NewAssetUpdateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssetUpdateFailed,
		Message:   "Asset update could not be persisted",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBreakdownDecodeError creates a non-retryable error for a stored
// breakdown document that fails schema validation.
func NewBreakdownDecodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBreakdownDecodeFailed,
		Message:   "Stored score breakdown is malformed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionError creates a retryable database connection error.
func NewDatabaseConnectionError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionLost,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended job retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAssetUpdateFailed,
		ErrCodeDatabaseConnectionLost,
		ErrCodeNotificationSendFailed,
		"EXTERNAL_SERVICE_ERROR":
		return 3 // Retryable technical errors

	case ErrCodeAuthCheckFailed,
		ErrCodeAuditIndexFailed,
		"TIMEOUT_ERROR":
		return 2

	default:
		return 0 // Business and validation errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for the engine.
// Internal and BPMN error codes are identical by convention.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}
