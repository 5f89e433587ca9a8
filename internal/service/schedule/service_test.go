package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidesk/scheduling-api/internal/model"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

// In-memory fakes keyed the way the Postgres repositories key their tables.

type scheduleKey struct {
	doctorID uuid.UUID
	clinicID uuid.UUID
}

type fakeAvailRepo struct {
	ranges     map[scheduleKey][]*model.AvailabilityRange
	weeklyOff  map[scheduleKey][]int
	specific   map[scheduleKey][]*model.SpecificOffDay
	rangesErr  error
	replaceErr error
}

func newFakeAvailRepo() *fakeAvailRepo {
	return &fakeAvailRepo{
		ranges:    make(map[scheduleKey][]*model.AvailabilityRange),
		weeklyOff: make(map[scheduleKey][]int),
		specific:  make(map[scheduleKey][]*model.SpecificOffDay),
	}
}

func (f *fakeAvailRepo) ReplaceRanges(_ context.Context, doctorID, clinicID uuid.UUID, ranges []*model.AvailabilityRange) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.ranges[scheduleKey{doctorID, clinicID}] = ranges
	return nil
}

func (f *fakeAvailRepo) ListRanges(_ context.Context, doctorID, clinicID uuid.UUID) ([]*model.AvailabilityRange, error) {
	if f.rangesErr != nil {
		return nil, f.rangesErr
	}
	return f.ranges[scheduleKey{doctorID, clinicID}], nil
}

func (f *fakeAvailRepo) ListRangesForDay(_ context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) ([]*model.AvailabilityRange, error) {
	var out []*model.AvailabilityRange
	for _, r := range f.ranges[scheduleKey{doctorID, clinicID}] {
		if r.DayOfWeek == dayOfWeek {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAvailRepo) ListDoctorRanges(_ context.Context, doctorID uuid.UUID) ([]*model.DoctorClinicRange, error) {
	var out []*model.DoctorClinicRange
	for key, ranges := range f.ranges {
		if key.doctorID != doctorID {
			continue
		}
		for _, r := range ranges {
			rc := *r
			rc.ClinicID = key.clinicID
			out = append(out, &model.DoctorClinicRange{AvailabilityRange: rc})
		}
	}
	return out, nil
}

func (f *fakeAvailRepo) DeleteAllRanges(_ context.Context, doctorID uuid.UUID) error {
	for key := range f.ranges {
		if key.doctorID == doctorID {
			delete(f.ranges, key)
		}
	}
	return nil
}

func (f *fakeAvailRepo) ReplaceWeeklyOffDays(_ context.Context, doctorID, clinicID uuid.UUID, days []int) error {
	f.weeklyOff[scheduleKey{doctorID, clinicID}] = days
	return nil
}

func (f *fakeAvailRepo) ListWeeklyOffDays(_ context.Context, doctorID, clinicID uuid.UUID) ([]*model.WeeklyOffDay, error) {
	var out []*model.WeeklyOffDay
	for _, d := range f.weeklyOff[scheduleKey{doctorID, clinicID}] {
		out = append(out, &model.WeeklyOffDay{DoctorID: doctorID, ClinicID: clinicID, DayOfWeek: d})
	}
	return out, nil
}

func (f *fakeAvailRepo) HasWeeklyOffDay(_ context.Context, doctorID, clinicID uuid.UUID, dayOfWeek int) (bool, error) {
	for _, d := range f.weeklyOff[scheduleKey{doctorID, clinicID}] {
		if d == dayOfWeek {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAvailRepo) AddSpecificOffDays(_ context.Context, doctorID, clinicID uuid.UUID, dates []time.Time, reason string) error {
	key := scheduleKey{doctorID, clinicID}
	for _, d := range dates {
		exists := false
		for _, existing := range f.specific[key] {
			if existing.Date.Equal(d) {
				exists = true
				break
			}
		}
		if !exists {
			f.specific[key] = append(f.specific[key], &model.SpecificOffDay{
				DoctorID: doctorID, ClinicID: clinicID, Date: d, Reason: reason,
			})
		}
	}
	return nil
}

func (f *fakeAvailRepo) DeleteSpecificOffDay(_ context.Context, doctorID, clinicID uuid.UUID, date time.Time) error {
	key := scheduleKey{doctorID, clinicID}
	for i, existing := range f.specific[key] {
		if existing.Date.Equal(date) {
			f.specific[key] = append(f.specific[key][:i], f.specific[key][i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("specific off day", nil)
}

func (f *fakeAvailRepo) ListSpecificOffDays(_ context.Context, doctorID, clinicID uuid.UUID) ([]*model.SpecificOffDay, error) {
	return f.specific[scheduleKey{doctorID, clinicID}], nil
}

func (f *fakeAvailRepo) HasSpecificOffDay(_ context.Context, doctorID, clinicID uuid.UUID, date time.Time) (bool, error) {
	for _, existing := range f.specific[scheduleKey{doctorID, clinicID}] {
		if existing.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingRepo struct {
	bookings []*model.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NewNotFound("booking", nil)
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ *model.Booking) error { return nil }

func (f *fakeBookingRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) ListOccupyingForDay(_ context.Context, doctorID, clinicID uuid.UUID, dayStart time.Time) ([]*model.Booking, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && b.ClinicID == clinicID && b.Status.Occupies() &&
			!b.StartTime.Before(dayStart) && b.StartTime.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, apperrors.NewNotFound("doctor", nil)
}

func (f *fakeDoctorRepo) GetByEmail(_ context.Context, email string) (*model.Doctor, error) {
	for _, d := range f.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, apperrors.NewNotFound("doctor", nil)
}

func (f *fakeDoctorRepo) UpdateSlotDuration(_ context.Context, id uuid.UUID, minutes int) error {
	d, ok := f.doctors[id]
	if !ok {
		return apperrors.NewNotFound("doctor", nil)
	}
	d.SlotDuration = minutes
	return nil
}

type fakeClinicRepo struct {
	clinics map[uuid.UUID]*model.Clinic
}

func (f *fakeClinicRepo) Get(_ context.Context, id uuid.UUID) (*model.Clinic, error) {
	if c, ok := f.clinics[id]; ok {
		return c, nil
	}
	return nil, apperrors.NewNotFound("clinic", nil)
}

func (f *fakeClinicRepo) ListForDoctor(_ context.Context, _ uuid.UUID) ([]*model.Clinic, error) {
	return nil, nil
}

type fixture struct {
	svc      *Service
	avail    *fakeAvailRepo
	bookings *fakeBookingRepo
	doctorID uuid.UUID
	clinicID uuid.UUID
}

func newFixture(t *testing.T, slotDuration int) *fixture {
	t.Helper()

	doctorID := uuid.New()
	clinicID := uuid.New()

	avail := newFakeAvailRepo()
	bookings := &fakeBookingRepo{}
	doctors := &fakeDoctorRepo{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {Base: model.Base{ID: doctorID}, Email: "doc@example.com", SlotDuration: slotDuration},
	}}
	clinics := &fakeClinicRepo{clinics: map[uuid.UUID]*model.Clinic{
		clinicID: {Base: model.Base{ID: clinicID}, Name: "Downtown"},
	}}

	return &fixture{
		svc:      NewService(avail, bookings, doctors, clinics),
		avail:    avail,
		bookings: bookings,
		doctorID: doctorID,
		clinicID: clinicID,
	}
}

// monday is a fixed Monday used across slot calculator tests.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func (f *fixture) saveRanges(t *testing.T, inputs ...model.RangeInput) {
	t.Helper()
	_, err := f.svc.SaveAvailability(context.Background(), f.doctorID, f.clinicID, inputs)
	require.NoError(t, err)
}

func TestSaveAvailabilityRejectsInvertedRange(t *testing.T) {
	f := newFixture(t, 30)

	_, err := f.svc.SaveAvailability(context.Background(), f.doctorID, f.clinicID, []model.RangeInput{
		{DayOfWeek: 1, StartTime: mustTime(t, "12:00"), EndTime: mustTime(t, "09:00")},
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidRange))
	// Nothing persisted.
	stored, _ := f.avail.ListRanges(context.Background(), f.doctorID, f.clinicID)
	assert.Empty(t, stored)
}

func TestSaveAvailabilityRejectsZeroLengthRange(t *testing.T) {
	f := newFixture(t, 30)

	_, err := f.svc.SaveAvailability(context.Background(), f.doctorID, f.clinicID, []model.RangeInput{
		{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "09:00")},
	})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidRange))
}

func TestSaveAvailabilityReplacesWholesale(t *testing.T) {
	f := newFixture(t, 30)

	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})
	f.saveRanges(t, model.RangeInput{DayOfWeek: 3, StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "17:00")})

	stored, err := f.avail.ListRanges(context.Background(), f.doctorID, f.clinicID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].DayOfWeek)
}

func TestSaveAvailabilityIsIdempotent(t *testing.T) {
	f := newFixture(t, 30)

	in := model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")}
	f.saveRanges(t, in)
	f.saveRanges(t, in)

	stored, err := f.avail.ListRanges(context.Background(), f.doctorID, f.clinicID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, mustTime(t, "09:00"), stored[0].StartTime)
	assert.Equal(t, mustTime(t, "12:00"), stored[0].EndTime)
}

func TestSaveAvailabilityWrapsRepositoryFailure(t *testing.T) {
	f := newFixture(t, 30)
	f.avail.replaceErr = assert.AnError

	_, err := f.svc.SaveAvailability(context.Background(), f.doctorID, f.clinicID, []model.RangeInput{
		{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")},
	})

	assert.True(t, apperrors.IsCode(err, apperrors.ErrTransaction))
}

func TestSaveWeeklyOffDaysDeduplicatesAndValidates(t *testing.T) {
	f := newFixture(t, 30)

	require.NoError(t, f.svc.SaveWeeklyOffDays(context.Background(), f.doctorID, f.clinicID, []int{0, 6, 0}))
	days, err := f.avail.ListWeeklyOffDays(context.Background(), f.doctorID, f.clinicID)
	require.NoError(t, err)
	assert.Len(t, days, 2)

	err = f.svc.SaveWeeklyOffDays(context.Background(), f.doctorID, f.clinicID, []int{7})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
}

func TestUpdateSlotDurationValidatesBounds(t *testing.T) {
	f := newFixture(t, 30)

	assert.True(t, apperrors.IsCode(
		f.svc.UpdateSlotDuration(context.Background(), f.doctorID, 4), apperrors.ErrBadRequest))
	assert.True(t, apperrors.IsCode(
		f.svc.UpdateSlotDuration(context.Background(), f.doctorID, 121), apperrors.ErrBadRequest))
	assert.NoError(t, f.svc.UpdateSlotDuration(context.Background(), f.doctorID, 45))
}

func TestGetAvailableSlotsBasicWindow(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[0].End)
	assert.Equal(t, monday.Add(11*time.Hour+30*time.Minute), slots[5].Start)
	assert.Equal(t, monday.Add(12*time.Hour), slots[5].End)
}

func TestGetAvailableSlotsExcludesOccupiedWindows(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})

	f.bookings.bookings = append(f.bookings.bookings, &model.Booking{
		DoctorID:  f.doctorID,
		ClinicID:  f.clinicID,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    model.BookingStatusConfirmed,
	})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	for _, s := range slots {
		assert.NotEqual(t, monday.Add(10*time.Hour), s.Start)
	}
}

func TestGetAvailableSlotsIgnoresTerminalBookings(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})

	f.bookings.bookings = append(f.bookings.bookings, &model.Booking{
		DoctorID:  f.doctorID,
		ClinicID:  f.clinicID,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    model.BookingStatusCancelled,
	})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestGetAvailableSlotsWeeklyOffDayShortCircuits(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})
	require.NoError(t, f.svc.SaveWeeklyOffDays(context.Background(), f.doctorID, f.clinicID, []int{1}))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsSpecificOffDayShortCircuits(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})
	require.NoError(t, f.svc.AddSpecificOffDays(context.Background(), f.doctorID, f.clinicID, []time.Time{monday}, "conference"))

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// The following Monday is unaffected.
	slots, err = f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestGetAvailableSlotsNoRangesForDay(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 2, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsUnionsSplitRanges(t *testing.T) {
	f := newFixture(t, 60)
	f.saveRanges(t,
		model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "11:00")},
		model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "16:00")},
	)

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
	assert.Equal(t, monday.Add(10*time.Hour), slots[1].Start)
	assert.Equal(t, monday.Add(14*time.Hour), slots[2].Start)
	assert.Equal(t, monday.Add(15*time.Hour), slots[3].Start)
}

func TestGetAvailableSlotsExcludesPartialEdgeSlot(t *testing.T) {
	f := newFixture(t, 30)
	// 09:00-10:15: the 10:00 slot would poke 15 minutes past the range end,
	// so only 09:00 and 09:30 qualify.
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "10:15")})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[1].Start)
}

func TestGetAvailableSlotsOffGridRangeYieldsNothing(t *testing.T) {
	f := newFixture(t, 30)
	// 09:10-09:50 contains no full grid slot.
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:10"), EndTime: mustTime(t, "09:50")})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsAdjacentBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "10:00")})

	// Booking ends exactly when the 09:30 slot starts.
	f.bookings.bookings = append(f.bookings.bookings, &model.Booking{
		DoctorID:  f.doctorID,
		ClinicID:  f.clinicID,
		StartTime: monday.Add(9 * time.Hour),
		EndTime:   monday.Add(9*time.Hour + 30*time.Minute),
		Status:    model.BookingStatusPending,
	})

	slots, err := f.svc.GetAvailableSlots(context.Background(), f.doctorID, f.clinicID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[0].Start)
}

func TestDeleteSpecificOffDayMissingDateIsNotFound(t *testing.T) {
	f := newFixture(t, 30)

	err := f.svc.DeleteSpecificOffDay(context.Background(), f.doctorID, f.clinicID, monday)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestGetScheduleReturnsAllThreeSets(t *testing.T) {
	f := newFixture(t, 30)
	f.saveRanges(t, model.RangeInput{DayOfWeek: 1, StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "12:00")})
	require.NoError(t, f.svc.SaveWeeklyOffDays(context.Background(), f.doctorID, f.clinicID, []int{0}))
	require.NoError(t, f.svc.AddSpecificOffDays(context.Background(), f.doctorID, f.clinicID, []time.Time{monday}, "vacation"))

	sched, err := f.svc.GetSchedule(context.Background(), f.doctorID, f.clinicID)
	require.NoError(t, err)
	assert.Len(t, sched.Ranges, 1)
	assert.Len(t, sched.WeeklyOffDays, 1)
	require.Len(t, sched.SpecificOffDays, 1)
	assert.Equal(t, "vacation", sched.SpecificOffDays[0].Reason)
}
