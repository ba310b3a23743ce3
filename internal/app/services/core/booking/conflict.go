package booking

import (
	"fmt"
	"sort"
	"telecare-service/internal/app/models"
	"telecare-service/internal/app/services/core/availability"
	"telecare-service/internal/pkg/exceptions"
	"time"
)

// ConflictKind classifies how a requested interval relates to a doctor's
// existing blocking appointments.
type ConflictKind int

const (
	NoConflict ConflictKind = iota
	ExactDuplicate
	Overlap
)

// ConflictReport carries the classification and, when relevant, the existing
// appointment that caused it. For ExactDuplicate that is the patient's own
// earlier booking; for Overlap it is the earliest-starting collision.
type ConflictReport struct {
	Kind            ConflictKind
	ConflictingWith *models.Appointment
}

// DetectConflict classifies [start, end) against the doctor's existing
// appointments. Cancelled appointments never block. An exact duplicate by the
// same patient wins over any overlap classification so that client retries
// stay idempotent instead of turning into rejections.
func DetectConflict(patientID string, start, end time.Time, existing []models.Appointment) (ConflictReport, error) {
	if !start.Before(end) {
		return ConflictReport{}, exceptions.ErrInvalidAppointmentInterval(
			fmt.Errorf("start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		)
	}

	blocking := make([]models.Appointment, 0, len(existing))
	for _, a := range existing {
		if a.Blocking() {
			blocking = append(blocking, a)
		}
	}

	for i := range blocking {
		a := blocking[i]
		if a.PatientID == patientID && a.Start.Equal(start) && a.End.Equal(end) {
			return ConflictReport{Kind: ExactDuplicate, ConflictingWith: &blocking[i]}, nil
		}
	}

	sort.SliceStable(blocking, func(i, j int) bool {
		return blocking[i].Start.Before(blocking[j].Start)
	})
	for i := range blocking {
		a := blocking[i]
		if availability.Overlaps(start, end, a.Start, a.End) {
			return ConflictReport{Kind: Overlap, ConflictingWith: &blocking[i]}, nil
		}
	}

	return ConflictReport{Kind: NoConflict}, nil
}

// WithinWorkingHours checks [start, end) against the doctor's schedule
// blocks. A doctor with no schedule blocks at all accepts any interval, so
// onboarding doctors can take bookings before configuring working hours.
func WithinWorkingHours(blocks []models.ScheduleBlock, start, end time.Time, loc *time.Location) (bool, error) {
	contained, hasSchedule, err := availability.ContainedInAnyBlock(blocks, start, end, loc)
	if err != nil {
		return false, exceptions.ErrInvalidScheduleBlock(err)
	}
	if !hasSchedule {
		return true, nil
	}
	return contained, nil
}
