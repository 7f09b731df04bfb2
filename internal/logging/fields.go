package logging

// ServiceName is attached to every log line.
const ServiceName = "raintarget"

// Common structured log field keys.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldSource     = "source"
	FieldOutcome    = "outcome"
	FieldErrorKind  = "error_kind"
	FieldScore      = "first_innings_score"
	FieldScheduled  = "scheduled_overs"
	FieldOversLost  = "overs_lost"
	FieldParScore   = "par_score"
)
