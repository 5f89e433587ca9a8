package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidesk/scheduling-api/internal/model"
)

func clinicRange(clinicID uuid.UUID, name string, day int, start, end model.TimeOfDay) *model.DoctorClinicRange {
	return &model.DoctorClinicRange{
		AvailabilityRange: model.AvailabilityRange{
			ClinicID:  clinicID,
			DayOfWeek: day,
			StartTime: start,
			EndTime:   end,
		},
		ClinicName: name,
	}
}

func TestResolveConflictsDisjointRangesProduceNone(t *testing.T) {
	clinicA := uuid.New()
	clinicB := uuid.New()

	// Clinic A holds Monday 09:00-12:00; editing Clinic B. A proposal for
	// 13:00-14:00 touches none of the flagged slots.
	ranges := []*model.DoctorClinicRange{
		clinicRange(clinicA, "Downtown", 1, 540, 720),
	}

	conflicts := ResolveCrossClinicConflicts(ranges, clinicB, 30)

	for _, c := range conflicts {
		assert.True(t, c.SlotStart < 780 || c.SlotStart >= 840,
			"slot %s should not fall in 13:00-14:00", c.SlotStart)
	}
}

func TestResolveConflictsFlagsOverlappingSlots(t *testing.T) {
	clinicA := uuid.New()
	clinicB := uuid.New()

	// Clinic A holds Monday 09:00-12:00. Editing Clinic B, the slots from
	// 09:00 through 11:30 are all taken; 12:00 is free since a slot starting
	// exactly at the range end is outside it.
	ranges := []*model.DoctorClinicRange{
		clinicRange(clinicA, "Downtown", 1, 540, 720),
	}

	conflicts := ResolveCrossClinicConflicts(ranges, clinicB, 30)
	require.Len(t, conflicts, 6)

	for i, c := range conflicts {
		assert.Equal(t, 1, c.DayOfWeek)
		assert.Equal(t, model.TimeOfDay(540+i*30), c.SlotStart)
		assert.Equal(t, clinicA, c.ClinicID)
		assert.Equal(t, "Downtown", c.ClinicName)
	}
}

func TestResolveConflictsIgnoresEditingClinic(t *testing.T) {
	clinicB := uuid.New()

	ranges := []*model.DoctorClinicRange{
		clinicRange(clinicB, "Uptown", 1, 540, 720),
	}

	conflicts := ResolveCrossClinicConflicts(ranges, clinicB, 30)
	assert.Empty(t, conflicts)
}

func TestResolveConflictsFirstClinicWinsPerSlot(t *testing.T) {
	clinicA := uuid.New()
	clinicB := uuid.New()
	editing := uuid.New()

	ranges := []*model.DoctorClinicRange{
		clinicRange(clinicA, "Downtown", 2, 600, 660),
		clinicRange(clinicB, "Uptown", 2, 600, 660),
	}

	conflicts := ResolveCrossClinicConflicts(ranges, editing, 30)
	require.Len(t, conflicts, 2)

	// Both slots attributed to the clinic seen first.
	for _, c := range conflicts {
		assert.Equal(t, clinicA, c.ClinicID)
	}
}

func TestResolveConflictsSortedByDayThenSlot(t *testing.T) {
	clinicA := uuid.New()
	editing := uuid.New()

	ranges := []*model.DoctorClinicRange{
		clinicRange(clinicA, "Downtown", 5, 540, 600),
		clinicRange(clinicA, "Downtown", 1, 840, 900),
	}

	conflicts := ResolveCrossClinicConflicts(ranges, editing, 30)
	require.Len(t, conflicts, 4)

	assert.Equal(t, 1, conflicts[0].DayOfWeek)
	assert.Equal(t, model.TimeOfDay(840), conflicts[0].SlotStart)
	assert.Equal(t, 1, conflicts[1].DayOfWeek)
	assert.Equal(t, model.TimeOfDay(870), conflicts[1].SlotStart)
	assert.Equal(t, 5, conflicts[2].DayOfWeek)
	assert.Equal(t, 5, conflicts[3].DayOfWeek)
}
