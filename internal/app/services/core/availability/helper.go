package availability

import (
	"fmt"
	"strconv"
	"strings"
	"telecare-service/internal/app/models"
	"time"
)

// Overlaps is the half-open interval test used by every collision check in
// the engine: two intervals that merely touch at an endpoint do not overlap,
// so back-to-back slots stay independently bookable.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConvertBlocksToWeeklyPlan maps schedule blocks to an internal weeklyPlan.
// It fails fast on the first invalid block so reader and writer cannot
// silently diverge: if schedule management stored bad data, slot generation
// stops early and surfaces the problem.
func ConvertBlocksToWeeklyPlan(blocks []models.ScheduleBlock) (weeklyPlan, error) {
	var wp weeklyPlan
	for i, b := range blocks {
		if b.DayOfWeek < 0 || b.DayOfWeek > 6 {
			return weeklyPlan{}, fmt.Errorf("scheduleBlock[%d]: invalid dayOfWeek %d", i, b.DayOfWeek)
		}
		start, ok := parseClockFlex(b.StartOfDay)
		if !ok {
			return weeklyPlan{}, fmt.Errorf("scheduleBlock[%d]: invalid start time '%s'", i, b.StartOfDay)
		}
		end, ok := parseClockFlex(b.EndOfDay)
		if !ok {
			return weeklyPlan{}, fmt.Errorf("scheduleBlock[%d]: invalid end time '%s'", i, b.EndOfDay)
		}
		if start.minutes() >= end.minutes() {
			return weeklyPlan{}, fmt.Errorf("scheduleBlock[%d]: start >= end (%02d:%02d >= %02d:%02d)", i, start.H, start.M, end.H, end.M)
		}
		w := dayWindow{Start: start, End: end, SlotMinutes: b.EffectiveSlotMinutes()}
		appendWindow(&wp, time.Weekday(b.DayOfWeek), w)
	}
	return wp, nil
}

func parseClockFlex(s string) (clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return clock{}, false
	}
	return clock{H: h, M: m}, true
}

func appendWindow(wp *weeklyPlan, wd time.Weekday, w dayWindow) {
	switch wd {
	case time.Sunday:
		wp.Sunday = append(wp.Sunday, w)
	case time.Monday:
		wp.Monday = append(wp.Monday, w)
	case time.Tuesday:
		wp.Tuesday = append(wp.Tuesday, w)
	case time.Wednesday:
		wp.Wednesday = append(wp.Wednesday, w)
	case time.Thursday:
		wp.Thursday = append(wp.Thursday, w)
	case time.Friday:
		wp.Friday = append(wp.Friday, w)
	case time.Saturday:
		wp.Saturday = append(wp.Saturday, w)
	}
}

// atClock returns the time on 'day' at hour:minute in the given timezone.
func atClock(day time.Time, h, m int, loc *time.Location) time.Time {
	d := day.In(loc)
	y, mo, dd := d.Date()
	return time.Date(y, mo, dd, h, m, 0, 0, loc)
}

// generateSlotsBetween produces fixed-length candidate slots within
// [start, end). Any remainder shorter than slotMinutes is dropped; no short
// trailing slot is ever emitted.
func generateSlotsBetween(start, end time.Time, slotMinutes int) []interval {
	if slotMinutes <= 0 {
		return nil
	}
	step := time.Duration(slotMinutes) * time.Minute
	var out []interval
	for t := start; ; t = t.Add(step) {
		if t.Add(step).After(end) {
			break
		}
		out = append(out, interval{Start: t, End: t.Add(step)})
	}
	return out
}

// slotsForWindow expands one schedule window into bookable candidates on a
// concrete local day. A window already fully in the past contributes
// nothing; in a window still in progress, candidates that started before
// 'now' are dropped. Candidates overlapping any busy interval are removed.
func slotsForWindow(day time.Time, loc *time.Location, w dayWindow, now time.Time, busy []interval) []interval {
	windowStart := atClock(day, w.Start.H, w.Start.M, loc)
	windowEnd := atClock(day, w.End.H, w.End.M, loc)
	if !windowEnd.After(now) {
		return nil
	}

	candidates := generateSlotsBetween(windowStart, windowEnd, w.SlotMinutes)

	var out []interval
	for _, c := range candidates {
		if c.Start.Before(now) {
			continue
		}
		if overlapsAny(c, busy) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func overlapsAny(c interval, busy []interval) bool {
	for _, b := range busy {
		if Overlaps(c.Start, c.End, b.Start, b.End) {
			return true
		}
	}
	return false
}

// busyIntervalsForDay returns the blocking appointment intervals that touch
// the local calendar day starting at dayStart.
func busyIntervalsForDay(appointments []models.Appointment, dayStart time.Time) []interval {
	dayEnd := dayStart.AddDate(0, 0, 1)
	var out []interval
	for _, a := range appointments {
		if !a.Blocking() {
			continue
		}
		if Overlaps(a.Start, a.End, dayStart, dayEnd) {
			out = append(out, interval{Start: a.Start, End: a.End})
		}
	}
	return out
}

// dedupeAndSortSlots orders candidates ascending by start and collapses
// duplicates with identical boundaries, which appear when schedule windows
// of the same weekday overlap.
func dedupeAndSortSlots(slots []interval) []interval {
	if len(slots) < 2 {
		return slots
	}
	sortIntervals(slots)
	out := slots[:1]
	for _, s := range slots[1:] {
		last := out[len(out)-1]
		if s.Start.Equal(last.Start) && s.End.Equal(last.End) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sortIntervals(slots []interval) {
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0; j-- {
			if slots[j].Start.Before(slots[j-1].Start) ||
				(slots[j].Start.Equal(slots[j-1].Start) && slots[j].End.Before(slots[j-1].End)) {
				slots[j], slots[j-1] = slots[j-1], slots[j]
			} else {
				break
			}
		}
	}
}

// ContainedInAnyBlock reports whether [start, end) fits fully inside at least
// one of the doctor's schedule windows for start's weekday in loc. The second
// return value reports whether the doctor has any schedule blocks at all;
// when false the caller must treat every interval as schedule-admissible.
func ContainedInAnyBlock(blocks []models.ScheduleBlock, start, end time.Time, loc *time.Location) (contained, hasSchedule bool, err error) {
	plan, err := ConvertBlocksToWeeklyPlan(blocks)
	if err != nil {
		return false, false, err
	}
	if plan.empty() {
		return false, false, nil
	}

	localStart := start.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	for _, w := range plan.forWeekday(localStart.Weekday()) {
		windowStart := atClock(day, w.Start.H, w.Start.M, loc)
		windowEnd := atClock(day, w.End.H, w.End.M, loc)
		if !start.Before(windowStart) && !end.After(windowEnd) {
			return true, true, nil
		}
	}
	return false, true, nil
}
