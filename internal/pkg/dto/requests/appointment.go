package requests

// CreateAppointmentRequest is the booking payload. Start and End are ISO-8601
// timestamps with offset (RFC 3339); they are parsed at the controller
// boundary so no wire format leaks into the engine.
type CreateAppointmentRequest struct {
	DoctorID  string `json:"doctor_id" validate:"required"`
	PatientID string `json:"patient_id" validate:"required"`
	Start     string `json:"start" validate:"required"`
	End       string `json:"end" validate:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed cancelled completed no-show"`
}
