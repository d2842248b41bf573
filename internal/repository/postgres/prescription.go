package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	p.CreatedAt = time.Now()
	query := `
		INSERT INTO prescriptions (
			appointment_id, medication, dosage, instructions,
			date_issued, prescription_cost, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		p.AppointmentID,
		p.Medication,
		p.Dosage,
		p.Instructions,
		p.DateIssued,
		p.Cost,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translateError(fmt.Errorf("failed to create prescription: %w", err), "prescription already exists")
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT id, appointment_id, medication, dosage, instructions,
			   date_issued, prescription_cost, created_at
		FROM prescriptions
		WHERE id = $1
	`
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, query, id)
	if isNoRows(err) {
		return nil, apperrors.NotFound("prescription")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}

func (r *prescriptionRepository) List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.Prescription, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	addArg := func(clause string, v interface{}) {
		args = append(args, v)
		where += fmt.Sprintf(clause, len(args))
	}

	if filters.AppointmentID != nil {
		addArg(" AND p.appointment_id = $%d", *filters.AppointmentID)
	}
	if filters.PatientID != nil {
		addArg(" AND a.patient_id = $%d", *filters.PatientID)
	}
	if filters.DoctorID != nil {
		addArg(" AND a.doctor_id = $%d", *filters.DoctorID)
	}

	from := `
		FROM prescriptions p
		JOIN appointments a ON a.id = p.appointment_id`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := `
		SELECT p.id, p.appointment_id, p.medication, p.dosage, p.instructions,
			   p.date_issued, p.prescription_cost, p.created_at` +
		from + where + fmt.Sprintf(`
		ORDER BY p.date_issued DESC, p.id DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, total, nil
}
