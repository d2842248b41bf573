// Package prescription gates prescription issuance on appointment
// completion and doctor ownership.
package prescription

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

type Service struct {
	repo    repository.PrescriptionRepository
	aptRepo repository.AppointmentRepository
	guard   authz.Guard
}

func NewService(repo repository.PrescriptionRepository, aptRepo repository.AppointmentRepository, guard authz.Guard) *Service {
	return &Service{
		repo:    repo,
		aptRepo: aptRepo,
		guard:   guard,
	}
}

// Create issues a prescription against a completed appointment. Only the
// doctor owning the appointment may issue; admins are rejected too.
func (s *Service) Create(ctx context.Context, p model.Principal, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if err := s.guard.Authorize(p, authz.CapIssuePrescription); err != nil {
		return nil, err
	}

	apt, err := s.aptRepo.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if !p.OwnsDoctor(apt.DoctorID) {
		return nil, apperrors.Forbidden("you are not the assigned doctor for this appointment")
	}

	if apt.Status != model.AppointmentStatusCompleted {
		return nil, apperrors.InvalidInput("prescriptions can only be created for completed appointments", nil)
	}

	if req.DateIssued.Before(model.DateOf(apt.DateTime)) {
		return nil, apperrors.InvalidInput("prescription date cannot be before the appointment date", nil)
	}

	if req.Cost != nil && req.Cost.LessThan(decimal.Zero) {
		return nil, apperrors.InvalidInput("prescription cost must be non-negative", nil)
	}

	prescription := &model.Prescription{
		AppointmentID: apt.ID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
		DateIssued:    req.DateIssued,
		Cost:          req.Cost,
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// List returns prescriptions newest date_issued first. Doctor principals are
// forcibly scoped to their own; a doctor_id filter that mismatches their own
// id fails rather than being re-scoped.
func (s *Service) List(ctx context.Context, p model.Principal, filters *model.PrescriptionFilters) ([]*model.Prescription, int, error) {
	if err := s.guard.Authorize(p, authz.CapViewPrescriptions); err != nil {
		return nil, 0, err
	}

	if p.IsDoctor() {
		if filters.DoctorID != nil && (p.DoctorID == nil || *filters.DoctorID != *p.DoctorID) {
			return nil, 0, apperrors.Forbidden("doctors can only view their own prescriptions")
		}
		filters.DoctorID = p.DoctorID
	}

	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, p model.Principal, id int64) (*model.Prescription, error) {
	if err := s.guard.Authorize(p, authz.CapViewPrescriptions); err != nil {
		return nil, err
	}

	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// ownership runs through the underlying appointment
	apt, err := s.aptRepo.Get(ctx, prescription.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireDoctorScope(p, apt.DoctorID, "view this prescription"); err != nil {
		return nil, err
	}
	return prescription, nil
}
