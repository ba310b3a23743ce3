package models

import "time"

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusNoShow    = "no-show"
)

// Appointment is a booked interval between a doctor and a patient.
// Start and End are absolute instants stored in UTC; the interval is
// half-open, so an appointment ending at 10:30 does not collide with one
// starting at 10:30.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctorId" json:"doctor_id"`
	PatientID string    `bson:"patientId" json:"patient_id"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// Blocking reports whether the appointment occupies its interval. Cancelled
// appointments free their slot and never participate in conflict checks.
func (a Appointment) Blocking() bool {
	return a.Status != AppointmentStatusCancelled
}

// allowedStatusTransitions lists the lifecycle edges an external status
// mutation may take. Terminal states have no outgoing edges.
var allowedStatusTransitions = map[string][]string{
	AppointmentStatusScheduled: {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusConfirmed: {AppointmentStatusCancelled, AppointmentStatusCompleted, AppointmentStatusNoShow},
}

func IsValidStatusTransition(from, to string) bool {
	for _, next := range allowedStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
