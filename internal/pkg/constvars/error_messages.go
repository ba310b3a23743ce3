package constvars

// Client-facing messages. Keep these free of internal detail.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process the request, please check your input"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"
	ErrClientStoreUnavailable              = "Service is temporarily busy, please retry shortly"
	ErrClientInvalidDateRange              = "The requested date range is invalid"
	ErrClientInvalidAppointmentInterval    = "The requested appointment time interval is invalid"
	ErrClientAppointmentNotFound           = "The requested appointment could not be found"
	ErrClientInvalidStatusTransition       = "The requested appointment status change is not allowed"
	ErrClientAppointmentOverlap            = "The requested time overlaps an existing appointment"
	ErrClientOutsideWorkingHours           = "The requested time falls outside the doctor's working hours"
	ErrClientTooManyRequests               = "Too many requests, you are temporarily blocked"
)

// Developer-facing messages, surfaced in logs and non-production responses.
const (
	ErrDevInvalidRequestPayload      = "invalid request payload"
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "failed to decode JSON request body"
	ErrDevCannotMarshalJSON          = "failed to marshal value to JSON"
	ErrDevCannotParseDate            = "failed to parse date value"
	ErrDevCannotParseDateTime        = "failed to parse timestamp value"
	ErrDevInvalidDateRange           = "range start must be before range end"
	ErrDevInvalidInterval            = "interval start must be before interval end"
	ErrDevMissingRequestID           = "request_id not found in request context"
	ErrDevServerDeadlineExceeded     = "request deadline exceeded"
	ErrDevMongoDBFindDocument        = "failed to find document in mongodb"
	ErrDevMongoDBInsertDocument      = "failed to insert document into mongodb"
	ErrDevMongoDBUpdateDocument      = "failed to update document in mongodb"
	ErrDevMongoDBDeleteDocument      = "failed to delete document from mongodb"
	ErrDevRedisSet                   = "failed to set value in redis"
	ErrDevRedisGet                   = "failed to get value from redis"
	ErrDevRedisDelete                = "failed to delete key from redis"
	ErrDevRedisIncrement             = "failed to increment key in redis"
	ErrDevRedisSetNX                 = "failed to acquire lock in redis"
	ErrDevStoreUnavailable           = "backing store unavailable"
	ErrDevRedisUnlock                = "failed to release lock in redis"
	ErrDevBookingLockContended       = "doctor booking lock is held by another request"
	ErrDevAppointmentNotFound        = "appointment document not found"
	ErrDevInvalidStatusTransition    = "appointment status transition not allowed"
	ErrDevQueuePublish               = "failed to publish message to queue"
	ErrDevInvalidInput               = "input is invalid"
	ErrDevScheduleBlockInvalidWindow = "schedule block start must be before end"
)
