package schedule

import (
	"github.com/clinidesk/scheduling-api/internal/model"
)

// Slot duration bounds, in minutes.
const (
	MinSlotDuration = 5
	MaxSlotDuration = 120
)

// GridSlot is one cell of the daily scheduling grid. End is computed modulo
// the day length, so when the duration does not divide 1440 evenly the final
// slot's end wraps past midnight. Callers working in raw minutes must use
// Start + duration, not End, for containment checks.
type GridSlot struct {
	Start model.TimeOfDay `json:"start"`
	End   model.TimeOfDay `json:"end"`
}

// ValidDuration reports whether d is a usable slot duration.
func ValidDuration(d int) bool {
	return d >= MinSlotDuration && d <= MaxSlotDuration
}

// DayGrid returns the canonical slot grid for one day: slots starting at
// 00:00 and every d minutes after, while strictly before 24:00. The grid is
// the fixed coordinate system the availability editor and the conflict
// resolver project onto.
func DayGrid(d int) []GridSlot {
	if d <= 0 {
		return nil
	}

	slots := make([]GridSlot, 0, (model.MinutesPerDay+d-1)/d)
	for m := 0; m < model.MinutesPerDay; m += d {
		slots = append(slots, GridSlot{
			Start: model.TimeOfDay(m),
			End:   model.TimeOfDay((m + d) % model.MinutesPerDay),
		})
	}
	return slots
}
