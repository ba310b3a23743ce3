package contracts

import (
	"context"
	"time"
)

// SlotRange is one bookable candidate slot. The interval is half-open and its
// duration always equals the slot duration of the schedule block that
// produced it.
type SlotRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayAvailability groups the free slots of one calendar date. Days without
// free slots are never emitted.
type DayAvailability struct {
	Date  string      `json:"date"`
	Slots []SlotRange `json:"slots"`
}

type AvailabilityUsecase interface {
	// GetDoctorAvailability expands the doctor's weekly schedule over the
	// half-open date range [rangeStart, rangeEnd), removes already-booked
	// intervals, and returns the remaining slots grouped per day in
	// ascending order. Dates are "YYYY-MM-DD" in the reference timezone.
	GetDoctorAvailability(ctx context.Context, doctorID, rangeStart, rangeEnd string) ([]DayAvailability, error)
	// InvalidateDoctorCache drops any cached availability of the doctor.
	InvalidateDoctorCache(ctx context.Context, doctorID string) error
}
