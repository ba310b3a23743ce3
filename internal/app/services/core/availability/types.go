package availability

import "time"

// clock holds a local wall time (hour and minute).
type clock struct {
	H int
	M int
}

func (c clock) minutes() int {
	return c.H*60 + c.M
}

// dayWindow is one working-hours window on a single day, with the slot
// duration its schedule block prescribes.
type dayWindow struct {
	Start       clock
	End         clock
	SlotMinutes int
}

// weeklyPlan lists zero or more windows per weekday.
type weeklyPlan struct {
	Sunday    []dayWindow
	Monday    []dayWindow
	Tuesday   []dayWindow
	Wednesday []dayWindow
	Thursday  []dayWindow
	Friday    []dayWindow
	Saturday  []dayWindow
}

func (wp weeklyPlan) forWeekday(wd time.Weekday) []dayWindow {
	switch wd {
	case time.Sunday:
		return wp.Sunday
	case time.Monday:
		return wp.Monday
	case time.Tuesday:
		return wp.Tuesday
	case time.Wednesday:
		return wp.Wednesday
	case time.Thursday:
		return wp.Thursday
	case time.Friday:
		return wp.Friday
	case time.Saturday:
		return wp.Saturday
	default:
		return nil
	}
}

func (wp weeklyPlan) empty() bool {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if len(wp.forWeekday(wd)) > 0 {
			return false
		}
	}
	return true
}

// interval is a concrete timestamped half-open [Start, End) range.
type interval struct {
	Start time.Time
	End   time.Time
}
