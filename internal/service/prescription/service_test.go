package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type fakePrescriptionRepo struct {
	prescriptions map[int64]*model.Prescription
	nextID        int64
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, p *model.Prescription) error {
	r.nextID++
	p.ID = r.nextID
	stored := *p
	r.prescriptions[p.ID] = &stored
	return nil
}

func (r *fakePrescriptionRepo) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("prescription")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePrescriptionRepo) List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.Prescription, int, error) {
	var out []*model.Prescription
	for _, p := range r.prescriptions {
		if filters.AppointmentID != nil && p.AppointmentID != *filters.AppointmentID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type fakeAppointmentStore struct {
	appointments map[int64]*model.Appointment
}

func (r *fakeAppointmentStore) CreateScheduled(ctx context.Context, apt *model.Appointment, preInsert func() error) error {
	return nil
}

func (r *fakeAppointmentStore) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	cp := *apt
	return &cp, nil
}

func (r *fakeAppointmentStore) UpdateChecked(ctx context.Context, apt *model.Appointment, checkConflict bool) error {
	return nil
}

func (r *fakeAppointmentStore) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, int, error) {
	return nil, 0, nil
}

func newTestService() *Service {
	aptStore := &fakeAppointmentStore{appointments: map[int64]*model.Appointment{
		1: {
			ID:       1,
			DoctorID: 10,
			DateTime: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Status:   model.AppointmentStatusCompleted,
		},
		2: {
			ID:       2,
			DoctorID: 10,
			DateTime: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			Status:   model.AppointmentStatusScheduled,
		},
	}}
	repo := &fakePrescriptionRepo{prescriptions: map[int64]*model.Prescription{}}
	return NewService(repo, aptStore, authz.NewGuard())
}

func doctorPrincipal(doctorID int64) model.Principal {
	return model.Principal{UserID: 2, Role: model.RoleDoctor, DoctorID: &doctorID}
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: 1, Role: model.RoleAdmin}
}

func createReq(appointmentID int64) *model.CreatePrescriptionRequest {
	return &model.CreatePrescriptionRequest{
		AppointmentID: appointmentID,
		Medication:    "amoxicillin",
		Dosage:        "500mg",
		Instructions:  "three times daily with food",
		DateIssued:    model.NewDate(2026, 3, 1),
	}
}

func TestCreatePrescription(t *testing.T) {
	svc := newTestService()

	rx, err := svc.Create(context.Background(), doctorPrincipal(10), createReq(1))
	require.NoError(t, err)
	assert.NotZero(t, rx.ID)
	assert.Equal(t, int64(1), rx.AppointmentID)
}

func TestCreatePrescriptionGates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("admins cannot issue", func(t *testing.T) {
		_, err := svc.Create(ctx, adminPrincipal(), createReq(1))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
	})

	t.Run("only the assigned doctor", func(t *testing.T) {
		_, err := svc.Create(ctx, doctorPrincipal(11), createReq(1))
		require.Error(t, err)
		assert.Equal(t, "you are not the assigned doctor for this appointment", err.Error())
	})

	t.Run("appointment must be completed", func(t *testing.T) {
		_, err := svc.Create(ctx, doctorPrincipal(10), createReq(2))
		require.Error(t, err)
		assert.Equal(t, "prescriptions can only be created for completed appointments", err.Error())
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := svc.Create(ctx, doctorPrincipal(10), createReq(99))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	})

	t.Run("date before the appointment", func(t *testing.T) {
		req := createReq(1)
		req.DateIssued = model.NewDate(2026, 2, 28)
		_, err := svc.Create(ctx, doctorPrincipal(10), req)
		require.Error(t, err)
		assert.Equal(t, "prescription date cannot be before the appointment date", err.Error())
	})

	t.Run("negative cost", func(t *testing.T) {
		req := createReq(1)
		cost := model.MoneyFromInt(-5)
		req.Cost = &cost
		_, err := svc.Create(ctx, doctorPrincipal(10), req)
		require.Error(t, err)
		assert.Equal(t, "prescription cost must be non-negative", err.Error())
	})
}

func TestListPrescriptionsDoctorScoping(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, doctorPrincipal(10), createReq(1))
	require.NoError(t, err)

	// a mismatched doctor_id filter is rejected
	other := int64(11)
	_, _, err = svc.List(ctx, doctorPrincipal(10), &model.PrescriptionFilters{DoctorID: &other})
	require.Error(t, err)
	assert.Equal(t, "doctors can only view their own prescriptions", err.Error())

	// their own doctor_id is allowed
	own := int64(10)
	_, count, err := svc.List(ctx, doctorPrincipal(10), &model.PrescriptionFilters{DoctorID: &own})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetPrescriptionScope(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rx, err := svc.Create(ctx, doctorPrincipal(10), createReq(1))
	require.NoError(t, err)

	_, err = svc.Get(ctx, doctorPrincipal(10), rx.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, adminPrincipal(), rx.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, doctorPrincipal(11), rx.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}
