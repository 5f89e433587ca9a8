package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinidesk/scheduling-api/internal/model"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	query := `
		SELECT id, name, address, phone, about, status, timezone, created_at, updated_at
		FROM clinics
		WHERE id = $1
	`
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("clinic", err)
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Clinic, error) {
	query := `
		SELECT c.id, c.name, c.address, c.phone, c.about, c.status, c.timezone,
			   c.created_at, c.updated_at
		FROM clinics c
		JOIN doctor_clinics dc ON dc.clinic_id = c.id
		WHERE dc.doctor_id = $1
		ORDER BY c.name
	`
	var clinics []*model.Clinic
	if err := r.db.SelectContext(ctx, &clinics, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list clinics for doctor: %w", err)
	}
	return clinics, nil
}
