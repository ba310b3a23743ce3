package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultSlotMinutes is used when a schedule block does not set its own
// slot duration.
const DefaultSlotMinutes = 30

// ScheduleBlock is one contiguous working-hours window of a doctor on one
// weekday, recurring weekly. StartOfDay and EndOfDay are wall-clock times in
// "HH:MM" form, interpreted in the service's reference timezone. DayOfWeek
// uses 0 for Sunday through 6 for Saturday.
//
// A doctor may hold several blocks on the same weekday (e.g. morning and
// afternoon). Blocks should not overlap, but the engine stays correct when
// they do: duplicated candidate slots collapse on identical boundaries.
type ScheduleBlock struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DoctorID    string             `bson:"doctorId" json:"doctor_id"`
	DayOfWeek   int                `bson:"dayOfWeek" json:"day_of_week"`
	StartOfDay  string             `bson:"startOfDay" json:"start_of_day"`
	EndOfDay    string             `bson:"endOfDay" json:"end_of_day"`
	SlotMinutes int                `bson:"slotMinutes" json:"slot_minutes"`
}

// EffectiveSlotMinutes returns the block's slot duration, falling back to
// the default when unset.
func (b ScheduleBlock) EffectiveSlotMinutes() int {
	if b.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return b.SlotMinutes
}
