package requests

// ScheduleBlockRequest describes one recurring weekly working-hours window.
// DayOfWeek uses 0 for Sunday through 6 for Saturday.
type ScheduleBlockRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartOfDay  string `json:"start_of_day" validate:"required,clock"`
	EndOfDay    string `json:"end_of_day" validate:"required,clock"`
	SlotMinutes int    `json:"slot_minutes" validate:"omitempty,gte=5,lte=480"`
}

// ReplaceScheduleRequest replaces the full weekly schedule of a doctor.
// An empty Blocks list clears the schedule.
type ReplaceScheduleRequest struct {
	Blocks []ScheduleBlockRequest `json:"blocks" validate:"dive"`
}
