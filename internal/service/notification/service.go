package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinidesk/scheduling-api/internal/email"
	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/repository"
	"github.com/clinidesk/scheduling-api/pkg/messaging"
)

const bookingChannel = "bookings"

const (
	eventBookingCreated       = "booking_created"
	eventBookingStatusChanged = "booking_status_changed"
)

// Service informs patients and downstream consumers about booking changes.
// Every method is fire-and-forget: failures are logged, never returned, and
// never roll back the booking they describe.
type Service interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previous model.BookingStatus)
}

type service struct {
	emailSvc    email.Service
	broker      messaging.Broker
	patientRepo repository.PatientRepository
	logger      zerolog.Logger
}

func NewService(emailSvc email.Service, broker messaging.Broker, patientRepo repository.PatientRepository, logger zerolog.Logger) Service {
	return &service{
		emailSvc:    emailSvc,
		broker:      broker,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

func (s *service) BookingCreated(ctx context.Context, booking *model.Booking) {
	s.publish(ctx, eventBookingCreated, booking)

	patient, err := s.patientRepo.Get(ctx, booking.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).
			Msg("failed to load patient for booking notification")
		return
	}

	if err := s.emailSvc.SendBookingConfirmation(ctx, patient.Email, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).
			Msg("failed to send booking confirmation email")
	}
}

func (s *service) BookingStatusChanged(ctx context.Context, booking *model.Booking, previous model.BookingStatus) {
	s.publish(ctx, eventBookingStatusChanged, map[string]interface{}{
		"booking":         booking,
		"previous_status": previous,
	})

	patient, err := s.patientRepo.Get(ctx, booking.PatientID)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).
			Msg("failed to load patient for status notification")
		return
	}

	if err := s.emailSvc.SendBookingStatusUpdate(ctx, patient.Email, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).
			Msg("failed to send status update email")
	}
}

func (s *service) publish(ctx context.Context, eventType string, payload interface{}) {
	msg := messaging.Message{Type: eventType, Payload: payload}
	if err := s.broker.Publish(ctx, bookingChannel, msg); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).
			Msg("failed to publish booking event")
	}
}
