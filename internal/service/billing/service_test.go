package billing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type fakeBillingRepo struct {
	appointments  []model.BillingAppointment
	prescriptions []model.BillingPrescription
}

func (r *fakeBillingRepo) CompletedAppointments(ctx context.Context, year int, month *int) ([]model.BillingAppointment, error) {
	return r.appointments, nil
}

func (r *fakeBillingRepo) IssuedPrescriptions(ctx context.Context, year int, month *int) ([]model.BillingPrescription, error) {
	return r.prescriptions, nil
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: 1, Role: model.RoleAdmin}
}

func TestReportAggregation(t *testing.T) {
	rxCost := model.MoneyFromInt(20)
	repo := &fakeBillingRepo{
		appointments: []model.BillingAppointment{
			{PatientID: 1, PatientFirstName: "Jane", PatientLastName: "Doe", Cost: model.MoneyFromInt(100)},
			{PatientID: 2, PatientFirstName: "John", PatientLastName: "Smith", Cost: model.MoneyFromInt(50)},
		},
		prescriptions: []model.BillingPrescription{
			{PatientID: 1, PatientFirstName: "Jane", PatientLastName: "Doe", Cost: &rxCost},
			{PatientID: 3, PatientFirstName: "Alex", PatientLastName: "Lee", Cost: nil},
		},
	}
	svc := NewService(repo, authz.NewGuard())

	report, err := svc.Report(context.Background(), adminPrincipal(), 2026, nil)
	require.NoError(t, err)

	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, 2, report.TotalAppointments)
	assert.Equal(t, 2, report.TotalPrescriptions)
	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(170)))

	require.Len(t, report.BreakdownByPatient, 3)

	jane := report.BreakdownByPatient[0]
	assert.Equal(t, int64(1), jane.PatientID)
	assert.Equal(t, "Jane Doe", jane.FullName)
	assert.True(t, jane.AppointmentTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, jane.PrescriptionTotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, jane.TotalAmount.Equal(decimal.NewFromInt(120)))

	// a prescription without a cost counts toward the tally but adds zero
	alex := report.BreakdownByPatient[2]
	assert.Equal(t, int64(3), alex.PatientID)
	assert.True(t, alex.TotalAmount.Equal(decimal.Zero))
}

func TestReportEmptyPeriod(t *testing.T) {
	svc := NewService(&fakeBillingRepo{}, authz.NewGuard())

	report, err := svc.Report(context.Background(), adminPrincipal(), 2026, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalAppointments)
	assert.True(t, report.TotalIncome.Equal(decimal.Zero))
	assert.Empty(t, report.BreakdownByPatient)
}

func TestReportWireFormat(t *testing.T) {
	svc := NewService(&fakeBillingRepo{}, authz.NewGuard())

	report, err := svc.Report(context.Background(), adminPrincipal(), 2026, nil)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"year": 2026,
		"month": null,
		"total_appointments": 0,
		"total_prescriptions": 0,
		"total_income": "0.00",
		"breakdown_by_patient": []
	}`, string(data))

	rxCost := model.NewMoney(decimal.RequireFromString("19.9"))
	svc = NewService(&fakeBillingRepo{
		appointments: []model.BillingAppointment{
			{PatientID: 1, PatientFirstName: "Jane", PatientLastName: "Doe", Cost: model.MoneyFromInt(100)},
		},
		prescriptions: []model.BillingPrescription{
			{PatientID: 1, PatientFirstName: "Jane", PatientLastName: "Doe", Cost: &rxCost},
		},
	}, authz.NewGuard())

	report, err = svc.Report(context.Background(), adminPrincipal(), 2026, nil)
	require.NoError(t, err)

	data, err = json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_income":"119.90"`)
	assert.Contains(t, string(data), `"appointment_total":"100.00"`)
	assert.Contains(t, string(data), `"prescription_total":"19.90"`)
}

func TestReportValidation(t *testing.T) {
	svc := NewService(&fakeBillingRepo{}, authz.NewGuard())
	ctx := context.Background()

	_, err := svc.Report(ctx, adminPrincipal(), 0, nil)
	require.Error(t, err)
	assert.Equal(t, "year is required", err.Error())

	bad := 13
	_, err = svc.Report(ctx, adminPrincipal(), 2026, &bad)
	require.Error(t, err)
	assert.Equal(t, "month must be between 1 and 12", err.Error())

	doctorID := int64(10)
	doctor := model.Principal{UserID: 2, Role: model.RoleDoctor, DoctorID: &doctorID}
	_, err = svc.Report(ctx, doctor, 2026, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}
