package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type fakePatientRepo struct {
	patients map[int64]*model.Patient
	nextID   int64
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[int64]*model.Patient{}}
}

func (r *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error {
	r.nextID++
	p.ID = r.nextID
	stored := *p
	r.patients[p.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Get(ctx context.Context, id int64) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return apperrors.NotFound("patient")
	}
	stored := *p
	r.patients[p.ID] = &stored
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return apperrors.NotFound("patient")
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if filters.Name != "" {
			name := strings.ToLower(p.FirstName + " " + p.LastName)
			if !strings.Contains(name, strings.ToLower(filters.Name)) {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakePatientRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.patients[id]
	return ok, nil
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: 1, Role: model.RoleAdmin}
}

func doctorPrincipal() model.Principal {
	id := int64(10)
	return model.Principal{UserID: 2, Role: model.RoleDoctor, DoctorID: &id}
}

func createReq() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		DOB:       model.NewDate(1990, time.June, 15),
		Gender:    model.GenderFemale,
		Phone:     "555-0100",
		Address:   "1 Main St",
	}
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newFakePatientRepo(), authz.NewGuard())

	// both roles may manage patient records
	created, err := svc.Create(context.Background(), adminPrincipal(), createReq())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.Create(context.Background(), doctorPrincipal(), createReq())
	assert.NoError(t, err)
}

func TestCreatePatientInvalidGender(t *testing.T) {
	svc := NewService(newFakePatientRepo(), authz.NewGuard())
	req := createReq()
	req.Gender = model.Gender("unknown")

	_, err := svc.Create(context.Background(), adminPrincipal(), req)
	require.Error(t, err)
	assert.Equal(t, "invalid gender choice", err.Error())
}

func TestUpdatePatientPartial(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, authz.NewGuard())
	ctx := context.Background()

	created, err := svc.Create(ctx, adminPrincipal(), createReq())
	require.NoError(t, err)

	phone := "555-0199"
	updated, err := svc.Update(ctx, adminPrincipal(), created.ID, &model.UpdatePatientRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Jane", updated.FirstName)

	bad := model.Gender("unknown")
	_, err = svc.Update(ctx, adminPrincipal(), created.ID, &model.UpdatePatientRequest{Gender: &bad})
	require.Error(t, err)
	assert.Equal(t, "invalid gender choice", err.Error())
}

func TestDeletePatient(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, authz.NewGuard())
	ctx := context.Background()

	created, err := svc.Create(ctx, adminPrincipal(), createReq())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminPrincipal(), created.ID))

	err = svc.Delete(ctx, adminPrincipal(), created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListPatientsByName(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewService(repo, authz.NewGuard())
	ctx := context.Background()

	_, err := svc.Create(ctx, adminPrincipal(), createReq())
	require.NoError(t, err)

	other := createReq()
	other.FirstName = "John"
	other.LastName = "Smith"
	_, err = svc.Create(ctx, adminPrincipal(), other)
	require.NoError(t, err)

	_, count, err := svc.List(ctx, adminPrincipal(), &model.PatientFilters{Name: "doe"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
