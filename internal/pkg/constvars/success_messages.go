package constvars

const (
	GetAvailabilitySuccessMessage         = "Successfully retrieved doctor availability"
	GetScheduleSuccessMessage             = "Successfully retrieved doctor schedule"
	ReplaceScheduleSuccessMessage         = "Successfully replaced doctor schedule"
	GetAppointmentSuccessMessage          = "Successfully retrieved appointments"
	CreateAppointmentSuccessMessage       = "Successfully booked the appointment"
	DuplicateAppointmentSuccessMessage    = "Appointment was already booked with the same details"
	UpdateAppointmentStatusSuccessMessage = "Successfully updated appointment status"
	HealthCheckSuccessMessage             = "Service is healthy"
)
