package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/scheduling-api/internal/model"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
)

const doctorColumns = `
	id, email, name, password_hash, status, slot_duration, created_at, updated_at
`

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE email = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor by email: %w", err)
	}
	return &doctor, nil
}

// UpdateSlotDuration changes the doctor's grid quantization. Stored ranges
// are tied to the old grid, so they are cleared in the same transaction.
func (r *doctorRepository) UpdateSlotDuration(ctx context.Context, id uuid.UUID, minutes int) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE doctors SET slot_duration = $1, updated_at = $2 WHERE id = $3
		`, minutes, time.Now(), id)
		if err != nil {
			return fmt.Errorf("failed to update slot duration: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NewNotFound("doctor", nil)
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM availability_ranges WHERE doctor_id = $1
		`, id); err != nil {
			return fmt.Errorf("failed to clear availability ranges: %w", err)
		}
		return nil
	})
}
