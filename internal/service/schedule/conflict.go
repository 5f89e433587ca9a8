package schedule

import (
	"sort"

	"github.com/google/uuid"

	"github.com/clinidesk/scheduling-api/internal/model"
)

// GridConflict marks one grid slot as already committed to another clinic in
// the doctor's weekly availability. The editing UI disables these slots so a
// doctor cannot declare themselves available at two locations at once.
type GridConflict struct {
	DayOfWeek  int             `json:"day_of_week"`
	SlotStart  model.TimeOfDay `json:"slot_start"`
	ClinicID   uuid.UUID       `json:"clinic_id"`
	ClinicName string          `json:"clinic_name"`
}

type slotKey struct {
	day   int
	start model.TimeOfDay
}

// ResolveCrossClinicConflicts projects every other clinic's availability
// ranges onto the grid and reports each slot whose start lies inside one.
// When several clinics claim the same slot the first found wins; the editor
// only needs one name to explain the rejection.
func ResolveCrossClinicConflicts(ranges []*model.DoctorClinicRange, editingClinicID uuid.UUID, slotDuration int) []GridConflict {
	grid := DayGrid(slotDuration)

	seen := make(map[slotKey]GridConflict)
	for _, r := range ranges {
		if r.ClinicID == editingClinicID {
			continue
		}
		for _, slot := range grid {
			if slot.Start < r.StartTime || slot.Start >= r.EndTime {
				continue
			}
			key := slotKey{day: r.DayOfWeek, start: slot.Start}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = GridConflict{
				DayOfWeek:  r.DayOfWeek,
				SlotStart:  slot.Start,
				ClinicID:   r.ClinicID,
				ClinicName: r.ClinicName,
			}
		}
	}

	conflicts := make([]GridConflict, 0, len(seen))
	for _, c := range seen {
		conflicts = append(conflicts, c)
	}
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].DayOfWeek != conflicts[j].DayOfWeek {
			return conflicts[i].DayOfWeek < conflicts[j].DayOfWeek
		}
		return conflicts[i].SlotStart < conflicts[j].SlotStart
	})
	return conflicts
}
