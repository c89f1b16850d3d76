package models

// ReasonError is a business failure with a stable reason code. Calling layers
// translate codes to localized messages; the core only guarantees the code is
// distinct and stable. Compare with errors.Is against the sentinels below.
type ReasonError struct {
	Code    string
	Message string
}

func (e *ReasonError) Error() string {
	return e.Code + ": " + e.Message
}

// Retryable reports whether the caller may retry the same request. Only the
// serialization-point timeout qualifies.
func (e *ReasonError) Retryable() bool {
	return e == ErrBusy
}

var (
	ErrInvalidTimezone       = &ReasonError{Code: "invalid_timezone", Message: "timezone identifier is unknown"}
	ErrConsultantUnavailable = &ReasonError{Code: "consultant_unavailable", Message: "consultant is not accepting bookings"}
	ErrOutsideAvailability   = &ReasonError{Code: "outside_availability", Message: "requested slot is outside the consultant's availability"}
	ErrSlotTaken             = &ReasonError{Code: "slot_taken", Message: "requested slot overlaps an existing booking"}
	ErrInvalidTransition     = &ReasonError{Code: "invalid_transition", Message: "booking status does not permit this transition"}
	ErrTooEarly              = &ReasonError{Code: "too_early", Message: "booking cannot be completed before its end time"}
	ErrBusy                  = &ReasonError{Code: "busy", Message: "scheduling is busy, retry shortly"}
	ErrNotFound              = &ReasonError{Code: "not_found", Message: "record not found"}
	ErrInvalidDuration       = &ReasonError{Code: "invalid_duration", Message: "duration does not match a configured session length"}
	ErrInvalidWindow         = &ReasonError{Code: "invalid_window", Message: "weekly window is malformed"}
)
