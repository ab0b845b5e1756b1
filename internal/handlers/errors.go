package handlers

// Error Codes
const (
	ErrCodeInvalidDate       = "invalid_date"
	ErrCodeInvalidYear       = "invalid_year"
	ErrCodeInvalidMonth      = "invalid_month"
	ErrCodeInvalidDigits     = "invalid_digit_style"
	ErrCodeMissingParameter  = "missing_parameter"
	ErrCodeInvalidPayload    = "invalid_payload"
	ErrCodeInvalidAction     = "invalid_action"
	ErrCodeSessionNotFound   = "session_not_found"
	ErrCodeTooManySessions   = "too_many_sessions"
	ErrCodeNotSelectable     = "not_selectable"
	ErrCodeDayOutOfRange     = "day_out_of_range"
	ErrCodeOutOfRange        = "out_of_range"
	ErrCodeInvalidTime       = "invalid_time"
	ErrCodeSessionInitFailed = "session_init_failed"
	ErrCodeUnknown           = "unknown_error"
)

// ErrorMessages maps error codes to user-friendly messages
var ErrorMessages = map[string]string{
	ErrCodeInvalidDate:       "The date is not a valid Jalaali date (expected YYYY/MM/DD).",
	ErrCodeInvalidYear:       "The year is outside the supported range.",
	ErrCodeInvalidMonth:      "The month must be between 1 and 12.",
	ErrCodeInvalidDigits:     "Digit style must be 'persian' or 'latin'.",
	ErrCodeMissingParameter:  "A required parameter is missing.",
	ErrCodeInvalidPayload:    "The request body is not valid.",
	ErrCodeInvalidAction:     "Unknown picker action.",
	ErrCodeSessionNotFound:   "No picker session with this id.",
	ErrCodeTooManySessions:   "Too many open picker sessions. Delete one and try again.",
	ErrCodeNotSelectable:     "The day grid is not open.",
	ErrCodeDayOutOfRange:     "The displayed month has no such day.",
	ErrCodeOutOfRange:        "The date is outside the picker's year range.",
	ErrCodeInvalidTime:       "The time must be between 00:00 and 23:59.",
	ErrCodeSessionInitFailed: "Failed to create the picker session.",
	ErrCodeUnknown:           "An unknown error occurred.",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code string) string {
	if msg, ok := ErrorMessages[code]; ok {
		return msg
	}
	return ErrorMessages[ErrCodeUnknown]
}
