package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

const doubleBookedMsg = "doctor is already booked at this time"

func (r *appointmentRepository) CreateScheduled(ctx context.Context, apt *model.Appointment, preInsert func() error) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var patientExists bool
		if err := tx.GetContext(ctx, &patientExists,
			`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, apt.PatientID); err != nil {
			return fmt.Errorf("failed to check patient: %w", err)
		}
		if !patientExists {
			return apperrors.NotFound("patient")
		}

		var doctorExists bool
		if err := tx.GetContext(ctx, &doctorExists,
			`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, apt.DoctorID); err != nil {
			return fmt.Errorf("failed to check doctor: %w", err)
		}
		if !doctorExists {
			return apperrors.NotFound("doctor")
		}

		if preInsert != nil {
			if err := preInsert(); err != nil {
				return err
			}
		}

		conflict, err := hasConflictTx(ctx, tx, apt.DoctorID, apt.DateTime, nil)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.Conflict(doubleBookedMsg, nil)
		}

		apt.Status = model.AppointmentStatusScheduled
		apt.CreatedAt = time.Now()
		query := `
			INSERT INTO appointments (
				patient_id, doctor_id, date_time, reason, status,
				appointment_cost, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err = tx.QueryRowxContext(ctx, query,
			apt.PatientID,
			apt.DoctorID,
			apt.DateTime,
			apt.Reason,
			apt.Status,
			apt.Cost,
			apt.CreatedAt,
		).Scan(&apt.ID)
		if err != nil {
			// the partial unique index on (doctor_id, date_time) for
			// scheduled rows closes the race two concurrent creates
			// would otherwise win together
			return translateError(err, doubleBookedMsg)
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date_time, reason, status,
			   appointment_cost, created_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if isNoRows(err) {
		return nil, apperrors.NotFound("appointment")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) UpdateChecked(ctx context.Context, apt *model.Appointment, checkConflict bool) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if checkConflict {
			conflict, err := hasConflictTx(ctx, tx, apt.DoctorID, apt.DateTime, &apt.ID)
			if err != nil {
				return err
			}
			if conflict {
				return apperrors.Conflict(doubleBookedMsg, nil)
			}
		}

		query := `
			UPDATE appointments
			SET patient_id = $1, doctor_id = $2, date_time = $3,
				reason = $4, status = $5, appointment_cost = $6
			WHERE id = $7
		`
		result, err := tx.ExecContext(ctx, query,
			apt.PatientID,
			apt.DoctorID,
			apt.DateTime,
			apt.Reason,
			apt.Status,
			apt.Cost,
			apt.ID,
		)
		if err != nil {
			return translateError(err, doubleBookedMsg)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment")
		}
		return nil
	})
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		where += fmt.Sprintf(clause, len(args))
	}

	if filters.DoctorID != nil {
		addArg(" AND doctor_id = $%d", *filters.DoctorID)
	}
	if filters.PatientID != nil {
		addArg(" AND patient_id = $%d", *filters.PatientID)
	}
	if filters.Status != nil {
		addArg(" AND status = $%d", *filters.Status)
	}
	if filters.Date != nil {
		addArg(" AND date_time::date = $%d", filters.Date.Time)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM appointments`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := `
		SELECT id, patient_id, doctor_id, date_time, reason, status,
			   appointment_cost, created_at
		FROM appointments` + where + fmt.Sprintf(`
		ORDER BY date_time ASC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

func hasConflictTx(ctx context.Context, tx *sqlx.Tx, doctorID int64, dateTime time.Time, excludeID *int64) (bool, error) {
	return hasConflict(ctx, tx, doctorID, dateTime, excludeID)
}

type getter interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func hasConflict(ctx context.Context, q getter, doctorID int64, dateTime time.Time, excludeID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			AND date_time = $2
			AND status = 'scheduled'
	`
	args := []interface{}{doctorID, dateTime}

	if excludeID != nil {
		query += " AND id != $3"
		args = append(args, *excludeID)
	}
	query += ")"

	var conflict bool
	if err := q.GetContext(ctx, &conflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return conflict, nil
}
