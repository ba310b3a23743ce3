package availability

import (
	"telecare-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	return time.UTC
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, Overlaps(base, base.Add(time.Hour), base.Add(30*time.Minute), base.Add(90*time.Minute)))
	})

	t.Run("containment counts as overlap", func(t *testing.T) {
		assert.True(t, Overlaps(base, base.Add(2*time.Hour), base.Add(30*time.Minute), base.Add(time.Hour)))
		assert.True(t, Overlaps(base.Add(30*time.Minute), base.Add(time.Hour), base, base.Add(2*time.Hour)))
	})

	t.Run("identical intervals overlap", func(t *testing.T) {
		assert.True(t, Overlaps(base, base.Add(time.Hour), base, base.Add(time.Hour)))
	})

	t.Run("touching endpoints do not overlap", func(t *testing.T) {
		assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(time.Hour), base.Add(2*time.Hour)))
		assert.False(t, Overlaps(base.Add(time.Hour), base.Add(2*time.Hour), base, base.Add(time.Hour)))
	})

	t.Run("disjoint intervals do not overlap", func(t *testing.T) {
		assert.False(t, Overlaps(base, base.Add(time.Hour), base.Add(3*time.Hour), base.Add(4*time.Hour)))
	})

	t.Run("symmetric", func(t *testing.T) {
		a1, a2 := base, base.Add(45*time.Minute)
		b1, b2 := base.Add(30*time.Minute), base.Add(time.Hour)
		assert.Equal(t, Overlaps(a1, a2, b1, b2), Overlaps(b1, b2, a1, a2))
	})
}

func TestParseClockFlex(t *testing.T) {
	cases := []struct {
		in   string
		want clock
		ok   bool
	}{
		{"09:00", clock{9, 0}, true},
		{"9:30", clock{9, 30}, true},
		{"17.15", clock{17, 15}, true},
		{" 08:05 ", clock{8, 5}, true},
		{"23:59", clock{23, 59}, true},
		{"24:00", clock{}, false},
		{"12:60", clock{}, false},
		{"noon", clock{}, false},
		{"12", clock{}, false},
	}
	for _, c := range cases {
		got, ok := parseClockFlex(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.want, got, "input %q", c.in)
		}
	}
}

func TestGenerateSlotsBetween(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("exact division", func(t *testing.T) {
		slots := generateSlotsBetween(start, start.Add(2*time.Hour), 30)
		assert.Len(t, slots, 4)
		assert.Equal(t, start, slots[0].Start)
		assert.Equal(t, start.Add(2*time.Hour), slots[3].End)
	})

	t.Run("trailing remainder dropped", func(t *testing.T) {
		slots := generateSlotsBetween(start, start.Add(100*time.Minute), 45)
		assert.Len(t, slots, 2)
		assert.Equal(t, start.Add(90*time.Minute), slots[1].End)
	})

	t.Run("window shorter than one slot yields nothing", func(t *testing.T) {
		slots := generateSlotsBetween(start, start.Add(20*time.Minute), 30)
		assert.Empty(t, slots)
	})

	t.Run("every slot has fixed duration", func(t *testing.T) {
		slots := generateSlotsBetween(start, start.Add(7*time.Hour), 45)
		for _, s := range slots {
			assert.Equal(t, 45*time.Minute, s.End.Sub(s.Start))
		}
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		assert.Empty(t, generateSlotsBetween(start, start.Add(time.Hour), 0))
	})
}

func TestSlotsForWindow(t *testing.T) {
	loc := mustLoc(t)
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	window := dayWindow{Start: clock{9, 0}, End: clock{12, 0}, SlotMinutes: 30}

	t.Run("past window contributes nothing", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 13, 0, 0, 0, loc)
		assert.Empty(t, slotsForWindow(day, loc, window, now, nil))
	})

	t.Run("in-progress window drops started slots", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 10, 10, 0, 0, loc)
		slots := slotsForWindow(day, loc, window, now, nil)
		assert.Len(t, slots, 3)
		assert.Equal(t, time.Date(2026, 9, 7, 10, 30, 0, 0, loc), slots[0].Start)
	})

	t.Run("busy interval removes overlapping slots only", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		busy := []interval{{
			Start: time.Date(2026, 9, 7, 10, 0, 0, 0, loc),
			End:   time.Date(2026, 9, 7, 10, 30, 0, 0, loc),
		}}
		slots := slotsForWindow(day, loc, window, now, busy)
		assert.Len(t, slots, 5)
		for _, s := range slots {
			assert.False(t, Overlaps(s.Start, s.End, busy[0].Start, busy[0].End))
		}
	})

	t.Run("appointment touching slot boundary does not block it", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		busy := []interval{{
			Start: time.Date(2026, 9, 7, 8, 30, 0, 0, loc),
			End:   time.Date(2026, 9, 7, 9, 0, 0, 0, loc),
		}}
		slots := slotsForWindow(day, loc, window, now, busy)
		assert.Len(t, slots, 6)
		assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, loc), slots[0].Start)
	})
}

func TestConvertBlocksToWeeklyPlan(t *testing.T) {
	t.Run("valid blocks grouped by weekday", func(t *testing.T) {
		plan, err := ConvertBlocksToWeeklyPlan([]models.ScheduleBlock{
			{DayOfWeek: 1, StartOfDay: "09:00", EndOfDay: "12:00", SlotMinutes: 30},
			{DayOfWeek: 1, StartOfDay: "14:00", EndOfDay: "17:00", SlotMinutes: 45},
			{DayOfWeek: 5, StartOfDay: "10:00", EndOfDay: "13:00"},
		})
		assert.NoError(t, err)
		assert.Len(t, plan.Monday, 2)
		assert.Len(t, plan.Friday, 1)
		assert.Equal(t, models.DefaultSlotMinutes, plan.Friday[0].SlotMinutes)
		assert.False(t, plan.empty())
	})

	t.Run("no blocks yields empty plan", func(t *testing.T) {
		plan, err := ConvertBlocksToWeeklyPlan(nil)
		assert.NoError(t, err)
		assert.True(t, plan.empty())
	})

	t.Run("invalid weekday rejected", func(t *testing.T) {
		_, err := ConvertBlocksToWeeklyPlan([]models.ScheduleBlock{
			{DayOfWeek: 7, StartOfDay: "09:00", EndOfDay: "12:00"},
		})
		assert.Error(t, err)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := ConvertBlocksToWeeklyPlan([]models.ScheduleBlock{
			{DayOfWeek: 2, StartOfDay: "12:00", EndOfDay: "09:00"},
		})
		assert.Error(t, err)
	})
}

func TestContainedInAnyBlock(t *testing.T) {
	loc := mustLoc(t)
	blocks := []models.ScheduleBlock{
		{DayOfWeek: 1, StartOfDay: "09:00", EndOfDay: "12:00", SlotMinutes: 30},
		{DayOfWeek: 1, StartOfDay: "14:00", EndOfDay: "17:00", SlotMinutes: 30},
	}

	// 2026-09-07 is a Monday.
	monday := func(h, m int) time.Time {
		return time.Date(2026, 9, 7, h, m, 0, 0, loc)
	}

	t.Run("inside a window", func(t *testing.T) {
		contained, hasSchedule, err := ContainedInAnyBlock(blocks, monday(9, 30), monday(10, 0), loc)
		assert.NoError(t, err)
		assert.True(t, hasSchedule)
		assert.True(t, contained)
	})

	t.Run("flush against window boundaries", func(t *testing.T) {
		contained, _, err := ContainedInAnyBlock(blocks, monday(9, 0), monday(12, 0), loc)
		assert.NoError(t, err)
		assert.True(t, contained)
	})

	t.Run("spilling past the window", func(t *testing.T) {
		contained, hasSchedule, err := ContainedInAnyBlock(blocks, monday(11, 30), monday(12, 30), loc)
		assert.NoError(t, err)
		assert.True(t, hasSchedule)
		assert.False(t, contained)
	})

	t.Run("between windows", func(t *testing.T) {
		contained, _, err := ContainedInAnyBlock(blocks, monday(13, 0), monday(13, 30), loc)
		assert.NoError(t, err)
		assert.False(t, contained)
	})

	t.Run("wrong weekday", func(t *testing.T) {
		tuesday := time.Date(2026, 9, 8, 9, 30, 0, 0, loc)
		contained, _, err := ContainedInAnyBlock(blocks, tuesday, tuesday.Add(30*time.Minute), loc)
		assert.NoError(t, err)
		assert.False(t, contained)
	})

	t.Run("no schedule at all", func(t *testing.T) {
		contained, hasSchedule, err := ContainedInAnyBlock(nil, monday(3, 0), monday(4, 0), loc)
		assert.NoError(t, err)
		assert.False(t, hasSchedule)
		assert.False(t, contained)
	})
}

func TestDedupeAndSortSlots(t *testing.T) {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slots := []interval{
		{Start: base.Add(time.Hour), End: base.Add(90 * time.Minute)},
		{Start: base, End: base.Add(30 * time.Minute)},
		{Start: base, End: base.Add(30 * time.Minute)},
	}

	out := dedupeAndSortSlots(slots)
	assert.Len(t, out, 2)
	assert.Equal(t, base, out[0].Start)
	assert.Equal(t, base.Add(time.Hour), out[1].Start)
}
