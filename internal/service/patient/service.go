// Package patient handles patient record CRUD. Any admin or doctor may
// touch any patient record; there is no finer scoping.
package patient

import (
	"context"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type Service struct {
	repo  repository.PatientRepository
	guard authz.Guard
}

func NewService(repo repository.PatientRepository, guard authz.Guard) *Service {
	return &Service{
		repo:  repo,
		guard: guard,
	}
}

func (s *Service) Create(ctx context.Context, p model.Principal, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := s.guard.Authorize(p, authz.CapManagePatients); err != nil {
		return nil, err
	}

	if !req.Gender.Valid() {
		return nil, apperrors.InvalidInput("invalid gender choice", nil)
	}

	patient := &model.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DOB:         req.DOB,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		InsuranceID: req.InsuranceID,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, p model.Principal, id int64) (*model.Patient, error) {
	if err := s.guard.Authorize(p, authz.CapManagePatients); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, p model.Principal, filters *model.PatientFilters) ([]*model.Patient, int, error) {
	if err := s.guard.Authorize(p, authz.CapManagePatients); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, p model.Principal, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := s.guard.Authorize(p, authz.CapManagePatients); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Gender != nil && !req.Gender.Valid() {
		return nil, apperrors.InvalidInput("invalid gender choice", nil)
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DOB != nil {
		patient.DOB = *req.DOB
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.InsuranceID != nil {
		patient.InsuranceID = req.InsuranceID
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, p model.Principal, id int64) error {
	if err := s.guard.Authorize(p, authz.CapManagePatients); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
