package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/repository"
	"github.com/clinidesk/scheduling-api/internal/service/notification"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

type Service struct {
	repo        repository.BookingRepository
	doctorRepo  repository.DoctorRepository
	clinicRepo  repository.ClinicRepository
	patientRepo repository.PatientRepository
	notifSvc    notification.Service
	logger      zerolog.Logger
}

func NewService(
	repo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	clinicRepo repository.ClinicRepository,
	patientRepo repository.PatientRepository,
	notifSvc notification.Service,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		doctorRepo:  doctorRepo,
		clinicRepo:  clinicRepo,
		patientRepo: patientRepo,
		notifSvc:    notifSvc,
		logger:      logger,
	}
}

// CreateBooking creates a pending booking. The overlap check runs inside the
// insert transaction (repository layer), so the advisory slot list callers
// saw earlier is never trusted: at most one of two concurrent conflicting
// requests succeeds, the other gets the slot-conflict error.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewInvalidRange("booking start must be before end")
	}

	if _, err := s.doctorRepo.Get(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.clinicRepo.Get(ctx, req.ClinicID); err != nil {
		return nil, err
	}
	if _, err := s.patientRepo.Get(ctx, req.PatientID); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		PatientID: req.PatientID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    model.BookingStatusPending,
		Reason:    req.Reason,
		Notes:     req.Notes,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.NewTransaction("booking creation", err)
	}

	// Fire-and-forget: a failed notification never rolls back the booking.
	go s.notifSvc.BookingCreated(context.WithoutCancel(ctx), booking)

	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking through the one-way state machine.
// Reaching a terminal state frees the time window for rebooking.
func (s *Service) UpdateBookingStatus(ctx context.Context, id uuid.UUID, req *model.UpdateBookingStatusRequest) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.Status.Valid() {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown booking status %q", req.Status), nil)
	}
	if !booking.Status.CanTransitionTo(req.Status) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf(
			"cannot transition booking from %s to %s", booking.Status, req.Status), nil)
	}

	previous := booking.Status
	booking.Status = req.Status
	if req.Status == model.BookingStatusCancelled {
		booking.CancelReason = req.CancelReason
	}

	if err := s.repo.UpdateStatus(ctx, booking); err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.NewTransaction("booking status update", err)
	}

	go s.notifSvc.BookingStatusChanged(context.WithoutCancel(ctx), booking, previous)

	return booking, nil
}
