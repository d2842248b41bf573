package postgres

import (
	"context"
	"fmt"

	"github.com/clinicflow/clinic-api/internal/model"
)

func (r *billingRepository) CompletedAppointments(ctx context.Context, year int, month *int) ([]model.BillingAppointment, error) {
	query := `
		SELECT a.patient_id, p.first_name, p.last_name, a.appointment_cost
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		WHERE a.status = 'completed'
		AND EXTRACT(YEAR FROM a.date_time) = $1
	`
	args := []interface{}{year}
	if month != nil {
		query += " AND EXTRACT(MONTH FROM a.date_time) = $2"
		args = append(args, *month)
	}

	rows := []model.BillingAppointment{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query completed appointments: %w", err)
	}
	return rows, nil
}

func (r *billingRepository) IssuedPrescriptions(ctx context.Context, year int, month *int) ([]model.BillingPrescription, error) {
	query := `
		SELECT a.patient_id, p.first_name, p.last_name, pr.prescription_cost
		FROM prescriptions pr
		JOIN appointments a ON a.id = pr.appointment_id
		JOIN patients p ON p.id = a.patient_id
		WHERE EXTRACT(YEAR FROM pr.date_issued) = $1
	`
	args := []interface{}{year}
	if month != nil {
		query += " AND EXTRACT(MONTH FROM pr.date_issued) = $2"
		args = append(args, *month)
	}

	rows := []model.BillingPrescription{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query issued prescriptions: %w", err)
	}
	return rows, nil
}
