package booking

import (
	"telecare-service/internal/app/models"
	"telecare-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func monday(h, m int) time.Time {
	return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC)
}

func TestDetectConflict(t *testing.T) {
	existing := []models.Appointment{
		{
			ID:        "appt-1",
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Start:     monday(10, 0),
			End:       monday(10, 30),
			Status:    models.AppointmentStatusScheduled,
		},
	}

	t.Run("free interval has no conflict", func(t *testing.T) {
		report, err := DetectConflict("pat-2", monday(11, 0), monday(11, 30), existing)
		assert.NoError(t, err)
		assert.Equal(t, NoConflict, report.Kind)
		assert.Nil(t, report.ConflictingWith)
	})

	t.Run("overlapping interval reports the collision", func(t *testing.T) {
		report, err := DetectConflict("pat-2", monday(10, 15), monday(10, 45), existing)
		assert.NoError(t, err)
		assert.Equal(t, Overlap, report.Kind)
		assert.Equal(t, "appt-1", report.ConflictingWith.ID)
	})

	t.Run("same interval by another patient is an overlap, not a duplicate", func(t *testing.T) {
		report, err := DetectConflict("pat-2", monday(10, 0), monday(10, 30), existing)
		assert.NoError(t, err)
		assert.Equal(t, Overlap, report.Kind)
	})

	t.Run("same interval by the same patient is a duplicate", func(t *testing.T) {
		report, err := DetectConflict("pat-1", monday(10, 0), monday(10, 30), existing)
		assert.NoError(t, err)
		assert.Equal(t, ExactDuplicate, report.Kind)
		assert.Equal(t, "appt-1", report.ConflictingWith.ID)
	})

	t.Run("back-to-back interval does not conflict", func(t *testing.T) {
		report, err := DetectConflict("pat-2", monday(10, 30), monday(11, 0), existing)
		assert.NoError(t, err)
		assert.Equal(t, NoConflict, report.Kind)

		report, err = DetectConflict("pat-2", monday(9, 30), monday(10, 0), existing)
		assert.NoError(t, err)
		assert.Equal(t, NoConflict, report.Kind)
	})

	t.Run("cancelled appointment never blocks", func(t *testing.T) {
		cancelled := []models.Appointment{{
			ID:        "appt-2",
			PatientID: "pat-1",
			Start:     monday(10, 0),
			End:       monday(10, 30),
			Status:    models.AppointmentStatusCancelled,
		}}
		report, err := DetectConflict("pat-1", monday(10, 0), monday(10, 30), cancelled)
		assert.NoError(t, err)
		assert.Equal(t, NoConflict, report.Kind)
	})

	t.Run("earliest collision is reported when several overlap", func(t *testing.T) {
		many := []models.Appointment{
			{ID: "late", Start: monday(11, 0), End: monday(11, 30), Status: models.AppointmentStatusScheduled},
			{ID: "early", Start: monday(10, 0), End: monday(10, 30), Status: models.AppointmentStatusScheduled},
		}
		report, err := DetectConflict("pat-2", monday(10, 15), monday(11, 15), many)
		assert.NoError(t, err)
		assert.Equal(t, Overlap, report.Kind)
		assert.Equal(t, "early", report.ConflictingWith.ID)
	})

	t.Run("inverted interval is an error", func(t *testing.T) {
		_, err := DetectConflict("pat-1", monday(11, 0), monday(10, 0), existing)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("zero-length interval is an error", func(t *testing.T) {
		_, err := DetectConflict("pat-1", monday(10, 0), monday(10, 0), existing)
		assert.Error(t, err)
	})
}

func TestWithinWorkingHours(t *testing.T) {
	blocks := []models.ScheduleBlock{
		{DoctorID: "doc-1", DayOfWeek: 1, StartOfDay: "09:00", EndOfDay: "12:00", SlotMinutes: 30},
	}

	t.Run("inside working hours", func(t *testing.T) {
		ok, err := WithinWorkingHours(blocks, monday(9, 0), monday(9, 30), time.UTC)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("outside working hours", func(t *testing.T) {
		ok, err := WithinWorkingHours(blocks, monday(15, 0), monday(15, 30), time.UTC)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("straddling the window edge", func(t *testing.T) {
		ok, err := WithinWorkingHours(blocks, monday(11, 45), monday(12, 15), time.UTC)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no schedule admits any interval", func(t *testing.T) {
		ok, err := WithinWorkingHours(nil, monday(3, 0), monday(3, 30), time.UTC)
		assert.NoError(t, err)
		assert.True(t, ok)
	})
}
