package dto

import (
	"net/http"
	"strings"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// DomainErrorCodeMapping maps domain error codes to standardized API codes.
// Codes not listed here fall through to the prefix rules in GetHTTPStatus.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ITEM_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"DUPLICATE_CODE":          ErrCodeAlreadyExists,
	"DUPLICATE_NUMBER":        ErrCodeAlreadyExists,
	"DUPLICATE_SOURCE":        ErrCodeAlreadyExists,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,
	"CONCURRENCY_CONFLICT":    ErrCodeConcurrencyConflict,

	"INVALID_STATE":           ErrCodeInvalidState,
	"NO_ITEMS":                ErrCodeInvalidState,
	"ALREADY_SETTLED":         ErrCodeBusinessRule,
	"ALREADY_ACTIVE":          ErrCodeBusinessRule,
	"ALREADY_INACTIVE":        ErrCodeBusinessRule,
	"PAYMENT_EXCEEDS_BALANCE": ErrCodeBusinessRule,
	"NOT_DUE":                 ErrCodeBusinessRule,

	"INVALID_INPUT":  ErrCodeInvalidInput,
	"BAD_REQUEST":    ErrCodeBadRequest,
	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code has no mapping it is returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped domain codes are classified by prefix: validation-style
// INVALID_* codes are client errors, DUPLICATE_* codes are conflicts and
// ALREADY_* codes are business rule violations.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "DUPLICATE_"):
		return http.StatusConflict
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
