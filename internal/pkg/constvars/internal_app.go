package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceDoctors      = "doctors"
	ResourceAppointments = "appointments"
	ResourceAvailability = "availability"
	ResourceSchedule     = "schedule"
)

const (
	// DateOnlyFormat is the wire format for calendar dates in availability
	// queries and day-grouped responses.
	DateOnlyFormat = "2006-01-02"
	// ClockFormat is the wire format for schedule block wall-clock boundaries.
	ClockFormat = "15:04"
)

const (
	ResponseUnknown = "unknown"
)
