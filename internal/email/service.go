package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/clinidesk/scheduling-api/internal/config"
	"github.com/clinidesk/scheduling-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error
	SendBookingStatusUpdate(ctx context.Context, to string, booking *model.Booking) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error {
	subject := "Your appointment request"
	body := fmt.Sprintf(
		"Your appointment on %s from %s to %s has been received and is awaiting confirmation.",
		booking.StartTime.Format("Monday, 2 January 2006"),
		booking.StartTime.Format("15:04"),
		booking.EndTime.Format("15:04"),
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendBookingStatusUpdate(ctx context.Context, to string, booking *model.Booking) error {
	subject := fmt.Sprintf("Appointment %s", booking.Status)
	body := fmt.Sprintf(
		"Your appointment on %s at %s is now %s.",
		booking.StartTime.Format("Monday, 2 January 2006"),
		booking.StartTime.Format("15:04"),
		booking.Status,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
