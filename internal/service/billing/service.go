// Package billing computes per-period income reports from completed
// appointments and issued prescriptions.
package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type Service struct {
	repo  repository.BillingRepository
	guard authz.Guard
}

func NewService(repo repository.BillingRepository, guard authz.Guard) *Service {
	return &Service{
		repo:  repo,
		guard: guard,
	}
}

// Report aggregates the period's completed appointments and issued
// prescriptions: independent global sums plus a per-patient breakdown.
// Patients with no activity in the period are absent from the breakdown.
func (s *Service) Report(ctx context.Context, p model.Principal, year int, month *int) (*model.BillingReport, error) {
	if err := s.guard.Authorize(p, authz.CapViewBilling); err != nil {
		return nil, err
	}

	if year == 0 {
		return nil, apperrors.InvalidInput("year is required", nil)
	}
	if month != nil && (*month < 1 || *month > 12) {
		return nil, apperrors.InvalidInput("month must be between 1 and 12", nil)
	}

	appointments, err := s.repo.CompletedAppointments(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed appointments: %w", err)
	}
	prescriptions, err := s.repo.IssuedPrescriptions(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load issued prescriptions: %w", err)
	}

	byPatient := map[int64]*model.PatientBreakdown{}
	entry := func(patientID int64, firstName, lastName string) *model.PatientBreakdown {
		if b, ok := byPatient[patientID]; ok {
			return b
		}
		b := &model.PatientBreakdown{
			PatientID: patientID,
			FullName:  firstName + " " + lastName,
		}
		byPatient[patientID] = b
		return b
	}

	var appointmentTotal model.Money
	for _, apt := range appointments {
		appointmentTotal = appointmentTotal.Add(apt.Cost)
		b := entry(apt.PatientID, apt.PatientFirstName, apt.PatientLastName)
		b.AppointmentTotal = b.AppointmentTotal.Add(apt.Cost)
	}

	var prescriptionTotal model.Money
	for _, pre := range prescriptions {
		var cost model.Money
		if pre.Cost != nil {
			cost = *pre.Cost
		}
		prescriptionTotal = prescriptionTotal.Add(cost)
		b := entry(pre.PatientID, pre.PatientFirstName, pre.PatientLastName)
		b.PrescriptionTotal = b.PrescriptionTotal.Add(cost)
	}

	// per-patient totals are summed from their own parts, not re-derived
	// from the global total
	breakdown := make([]model.PatientBreakdown, 0, len(byPatient))
	for _, b := range byPatient {
		b.TotalAmount = b.AppointmentTotal.Add(b.PrescriptionTotal)
		breakdown = append(breakdown, *b)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].PatientID < breakdown[j].PatientID
	})

	return &model.BillingReport{
		Year:               year,
		Month:              month,
		TotalAppointments:  len(appointments),
		TotalPrescriptions: len(prescriptions),
		TotalIncome:        appointmentTotal.Add(prescriptionTotal),
		BreakdownByPatient: breakdown,
	}, nil
}
