package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
)

// Calendar engine error codes.
const (
	// ErrCodeInvalidArgument covers inputs the engine refuses to coerce:
	// negative business-day counts and unparseable dates.
	ErrCodeInvalidArgument ErrorCode = "CAL_001"

	// ErrCodeCalendarExhausted means the business-day window-growth loop hit
	// its defensive expansion cap.  With real calendar data this is
	// unreachable; it guards against degenerate holiday datasets.
	ErrCodeCalendarExhausted ErrorCode = "CAL_002"

	// ErrCodeHolidayInvalid covers holiday rows rejected on import
	// (missing date, locality supplied for a nationwide scope, etc.).
	ErrCodeHolidayInvalid ErrorCode = "CAL_003"
)

// Deadline record error codes.
const (
	ErrCodeDeadlineNotFound ErrorCode = "DLN_001"
	ErrCodeDeadlineInvalid  ErrorCode = "DLN_002"
)

const (
	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeInvalidArgument:   http.StatusBadRequest,
	ErrCodeCalendarExhausted: http.StatusInternalServerError,
	ErrCodeHolidayInvalid:    http.StatusUnprocessableEntity,

	ErrCodeDeadlineNotFound: http.StatusNotFound,
	ErrCodeDeadlineInvalid:  http.StatusUnprocessableEntity,
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}
