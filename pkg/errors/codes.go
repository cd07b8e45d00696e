package errors

import (
	"net/http"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeUnauthorized = ErrCodeUnauthorized
	CodeForbidden    = ErrCodeForbidden
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeOK           = ErrorCode("OK")
)

// Visa Reference Data Error Codes
const (
	ErrCodeRequirementNotFound ErrorCode = "VISA_001"
	ErrCodeVisaTypeInvalid     ErrorCode = "VISA_002"
	ErrCodeProcessingTimeUnset ErrorCode = "VISA_003"
)

// Trip Module Error Codes
const (
	ErrCodeTripNotFound        ErrorCode = "TRIP_001"
	ErrCodeDestinationNotFound ErrorCode = "TRIP_002"
	ErrCodeTravelDateInvalid   ErrorCode = "TRIP_003"
)

// Application Module Error Codes
const (
	ErrCodeApplicationNotFound  ErrorCode = "APP_001"
	ErrCodeInvalidTransition    ErrorCode = "APP_002"
	ErrCodeMissingRequiredField ErrorCode = "APP_003"
	ErrCodeVersionConflict      ErrorCode = "APP_004"
	ErrCodeApplicationTerminal  ErrorCode = "APP_005"
)

// httpStatusByCode maps each error code to its canonical HTTP status.
// Codes not present here default to 500.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeRequirementNotFound: http.StatusNotFound,
	ErrCodeVisaTypeInvalid:     http.StatusBadRequest,
	ErrCodeProcessingTimeUnset: http.StatusUnprocessableEntity,

	ErrCodeTripNotFound:        http.StatusNotFound,
	ErrCodeDestinationNotFound: http.StatusNotFound,
	ErrCodeTravelDateInvalid:   http.StatusBadRequest,

	ErrCodeApplicationNotFound:  http.StatusNotFound,
	ErrCodeInvalidTransition:    http.StatusConflict,
	ErrCodeMissingRequiredField: http.StatusBadRequest,
	ErrCodeVersionConflict:      http.StatusConflict,
	ErrCodeApplicationTerminal:  http.StatusConflict,
}

// HTTPStatus returns the HTTP status code associated with the error code.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := httpStatusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

//Personal.AI order the ending
