// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSourcePayloadInvalid ErrorCode = "SOURCE_PAYLOAD_INVALID"
	ErrCodeFusionFailed         ErrorCode = "FUSION_FAILED"
	ErrCodeQuestionGenFailed    ErrorCode = "QUESTION_GENERATION_FAILED"
	ErrCodeSelectionFailed      ErrorCode = "TEMPLATE_SELECTION_FAILED"
	ErrCodePopulationFailed     ErrorCode = "CONTENT_POPULATION_FAILED"
	ErrCodeUnknownIndustry      ErrorCode = "UNKNOWN_INDUSTRY"

	ErrCodeCompetitorQueryFailed ErrorCode = "COMPETITOR_QUERY_FAILED"
	ErrCodeSearchTimeout         ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound         ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSiteSaveFailed           ErrorCode = "SITE_SAVE_FAILED"
	ErrCodeDuplicateSite            ErrorCode = "DUPLICATE_SITE"
	ErrCodeAnswerSaveFailed         ErrorCode = "ANSWER_SAVE_FAILED"

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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ConvertToBPMNError maps a StandardError onto the workflow error shape.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   GetRetryCount(stdErr.Code),
	}
}

// GetRetryCount returns the retry budget for an error code. Engine-contract
// violations never retry; infrastructure failures do.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCompetitorQueryFailed, ErrCodeSearchTimeout,
		ErrCodeDatabaseConnectionFailed, ErrCodeSiteSaveFailed,
		ErrCodeAnswerSaveFailed, ErrCodeNotificationSendFailed:
		return 3
	}
	return 0
}

// GetErrorCategory buckets error codes for logging and metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeSourcePayloadInvalid, ErrCodeFusionFailed,
		ErrCodeQuestionGenFailed, ErrCodeSelectionFailed,
		ErrCodePopulationFailed, ErrCodeUnknownIndustry:
		return "engine"
	case ErrCodeCompetitorQueryFailed, ErrCodeSearchTimeout, ErrCodeIndexNotFound:
		return "search"
	case ErrCodeDatabaseConnectionFailed, ErrCodeSiteSaveFailed,
		ErrCodeDuplicateSite, ErrCodeAnswerSaveFailed:
		return "database"
	case ErrCodeNotificationSendFailed:
		return "notification"
	}
	return "unknown"
}

// ==========================
// 3. Error Constructors
// ==========================

// NewSourcePayloadInvalidError creates a non-retryable adapter input error.
func NewSourcePayloadInvalidError(source, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourcePayloadInvalid,
		Message:   "Provider payload failed schema validation",
		Details:   fmt.Sprintf("source: %s, %s", source, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownIndustryError creates a non-retryable catalogue lookup error.
func NewUnknownIndustryError(industry string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownIndustry,
		Message:   "No catalogue entry for industry",
		Details:   fmt.Sprintf("industry: %s", industry),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompetitorQueryFailedError creates a retryable search error.
func NewCompetitorQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompetitorQueryFailed,
		Message:   "Competitor index query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSiteSaveFailedError creates a retryable persistence error.
func NewSiteSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSiteSaveFailed,
		Message:   "Failed to persist generated site",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateSiteError creates a non-retryable duplicate error.
func NewDuplicateSiteError(siteID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateSite,
		Message:   "Site already exists for this business",
		Details:   fmt.Sprintf("siteId: %s", siteID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable delivery error.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send generation notification",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
