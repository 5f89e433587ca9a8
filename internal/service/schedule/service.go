package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/repository"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

type Service struct {
	availRepo   repository.AvailabilityRepository
	bookingRepo repository.BookingRepository
	doctorRepo  repository.DoctorRepository
	clinicRepo  repository.ClinicRepository
}

func NewService(
	availRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
) *Service {
	return &Service{
		availRepo:   availRepo,
		bookingRepo: bookingRepo,
		doctorRepo:  doctorRepo,
		clinicRepo:  clinicRepo,
	}
}

// validateRange rejects a malformed availability range before anything is
// persisted.
func validateRange(start, end model.TimeOfDay) error {
	if start >= end {
		return apperrors.NewInvalidRange(fmt.Sprintf(
			"range start %s must be before end %s", start, end))
	}
	return nil
}

// SaveAvailability replaces the doctor's entire range set for one clinic.
// The replacement is atomic; a failed save leaves the prior schedule intact.
func (s *Service) SaveAvailability(ctx context.Context, doctorID, clinicID uuid.UUID, inputs []model.RangeInput) ([]*model.AvailabilityRange, error) {
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	if _, err := s.clinicRepo.Get(ctx, clinicID); err != nil {
		return nil, err
	}

	ranges := make([]*model.AvailabilityRange, 0, len(inputs))
	for _, in := range inputs {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid day of week %d", in.DayOfWeek), nil)
		}
		if err := validateRange(in.StartTime, in.EndTime); err != nil {
			return nil, err
		}
		ranges = append(ranges, &model.AvailabilityRange{
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	if err := s.availRepo.ReplaceRanges(ctx, doctorID, clinicID, ranges); err != nil {
		return nil, apperrors.NewTransaction("availability save", err)
	}
	return ranges, nil
}

// GetSchedule returns the stored ranges and off-days for the editing UI.
func (s *Service) GetSchedule(ctx context.Context, doctorID, clinicID uuid.UUID) (*model.DoctorSchedule, error) {
	ranges, err := s.availRepo.ListRanges(ctx, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranges: %w", err)
	}
	weekly, err := s.availRepo.ListWeeklyOffDays(ctx, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly off days: %w", err)
	}
	specific, err := s.availRepo.ListSpecificOffDays(ctx, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load specific off days: %w", err)
	}
	return &model.DoctorSchedule{
		Ranges:          ranges,
		WeeklyOffDays:   weekly,
		SpecificOffDays: specific,
	}, nil
}

// SaveWeeklyOffDays replaces the doctor's recurring off-days for one clinic.
func (s *Service) SaveWeeklyOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, days []int) error {
	seen := make(map[int]bool, len(days))
	deduped := make([]int, 0, len(days))
	for _, day := range days {
		if day < 0 || day > 6 {
			return apperrors.NewBadRequest(fmt.Sprintf("invalid day of week %d", day), nil)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		deduped = append(deduped, day)
	}

	if err := s.availRepo.ReplaceWeeklyOffDays(ctx, doctorID, clinicID, deduped); err != nil {
		return apperrors.NewTransaction("weekly off-day save", err)
	}
	return nil
}

// AddSpecificOffDays blanks out individual calendar dates, e.g. vacation.
func (s *Service) AddSpecificOffDays(ctx context.Context, doctorID, clinicID uuid.UUID, dates []time.Time, reason string) error {
	normalized := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		normalized = append(normalized, startOfDay(d))
	}

	if err := s.availRepo.AddSpecificOffDays(ctx, doctorID, clinicID, normalized, reason); err != nil {
		return apperrors.NewTransaction("specific off-day save", err)
	}
	return nil
}

func (s *Service) DeleteSpecificOffDay(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) error {
	if err := s.availRepo.DeleteSpecificOffDay(ctx, doctorID, clinicID, startOfDay(date)); err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.NewTransaction("specific off-day delete", err)
	}
	return nil
}

// UpdateSlotDuration changes the doctor's grid quantization. Stored ranges
// are quantized to the old grid and are discarded with it; the client warns
// the doctor before calling this.
func (s *Service) UpdateSlotDuration(ctx context.Context, doctorID uuid.UUID, minutes int) error {
	if !ValidDuration(minutes) {
		return apperrors.NewBadRequest(fmt.Sprintf(
			"slot duration must be between %d and %d minutes", MinSlotDuration, MaxSlotDuration), nil)
	}
	if err := s.doctorRepo.UpdateSlotDuration(ctx, doctorID, minutes); err != nil {
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.NewTransaction("slot duration change", err)
	}
	return nil
}

// GetAvailabilityConflicts reports the grid slots already committed to other
// clinics, for the editor of editingClinicID's schedule. Advisory only: it
// guards the availability definition, not actual bookings.
func (s *Service) GetAvailabilityConflicts(ctx context.Context, doctorID, editingClinicID uuid.UUID) ([]GridConflict, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	ranges, err := s.availRepo.ListDoctorRanges(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor ranges: %w", err)
	}

	return ResolveCrossClinicConflicts(ranges, editingClinicID, s.slotDuration(doctor)), nil
}

// GetAvailableSlots returns the open, bookable time ranges for a doctor at a
// clinic on one date, in chronological order. The result is advisory: the
// booking-create path re-checks overlap authoritatively at write time.
func (s *Service) GetAvailableSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date time.Time) ([]model.TimeRange, error) {
	day := startOfDay(date)
	dayOfWeek := int(day.Weekday())

	offWeekly, err := s.availRepo.HasWeeklyOffDay(ctx, doctorID, clinicID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to check weekly off day: %w", err)
	}
	if offWeekly {
		return []model.TimeRange{}, nil
	}

	offSpecific, err := s.availRepo.HasSpecificOffDay(ctx, doctorID, clinicID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to check specific off day: %w", err)
	}
	if offSpecific {
		return []model.TimeRange{}, nil
	}

	ranges, err := s.availRepo.ListRangesForDay(ctx, doctorID, clinicID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranges: %w", err)
	}
	if len(ranges) == 0 {
		return []model.TimeRange{}, nil
	}

	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	duration := s.slotDuration(doctor)

	bookings, err := s.bookingRepo.ListOccupyingForDay(ctx, doctorID, clinicID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	// Membership is evaluated per range and unioned, so split days (morning
	// plus afternoon with a lunch gap) work. A slot poking past a range edge
	// is excluded entirely, never truncated. The final wrapped grid slot of
	// an uneven duration can never satisfy containment since startMin+d
	// exceeds every same-day range end.
	slots := make([]model.TimeRange, 0)
	for _, slot := range DayGrid(duration) {
		startMin := slot.Start.Minutes()
		endMin := startMin + duration

		contained := false
		for _, r := range ranges {
			if startMin >= r.StartTime.Minutes() && endMin <= r.EndTime.Minutes() {
				contained = true
				break
			}
		}
		if !contained {
			continue
		}

		candidate := model.TimeRange{
			Start: day.Add(time.Duration(startMin) * time.Minute),
			End:   day.Add(time.Duration(endMin) * time.Minute),
		}

		booked := false
		for _, b := range bookings {
			if candidate.Overlaps(model.TimeRange{Start: b.StartTime, End: b.EndTime}) {
				booked = true
				break
			}
		}
		if !booked {
			slots = append(slots, candidate)
		}
	}

	return slots, nil
}

func (s *Service) slotDuration(doctor *model.Doctor) int {
	if ValidDuration(doctor.SlotDuration) {
		return doctor.SlotDuration
	}
	return 30
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
