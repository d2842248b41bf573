// Package appointment implements the scheduling core: lifecycle mutations
// with the no-double-booking and future-date invariants.
package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicflow/clinic-api/internal/authz"
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/internal/repository"
	apperrors "github.com/clinicflow/clinic-api/pkg/errors"
)

const invalidStatusMsg = "invalid status, valid options are: scheduled, completed, canceled"

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	guard       authz.Guard
	now         func() time.Time
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository, guard authz.Guard) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		guard:       guard,
		now:         time.Now,
	}
}

// WithClock overrides the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create books a new appointment with status=scheduled. The precondition
// sequence runs in order, first failure wins: patient exists, doctor exists,
// doctor principals may only book for themselves, cost > 0, slot strictly in
// the future, slot free for the doctor. The entity reads and the insert
// share one transaction.
func (s *Service) Create(ctx context.Context, p model.Principal, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.guard.Authorize(p, authz.CapUseAppointments); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  req.DateTime,
		Reason:    req.Reason,
		Cost:      req.Cost,
	}

	err := s.repo.CreateScheduled(ctx, apt, func() error {
		if p.IsDoctor() && !p.OwnsDoctor(req.DoctorID) {
			return apperrors.Forbidden("doctors can only create appointments for themselves")
		}
		if req.Cost.LessThanOrEqual(decimal.Zero) {
			return apperrors.InvalidInput("appointment cost must be greater than zero", nil)
		}
		if !req.DateTime.After(s.now()) {
			return apperrors.InvalidInput("appointment date and time must be in the future", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

// List returns appointments matching the filters, slot order. Doctor
// principals are scoped to their own appointments automatically; an explicit
// doctor_id filter from a doctor is a usage error, not silently ignored.
func (s *Service) List(ctx context.Context, p model.Principal, filters *model.AppointmentFilters) ([]*model.Appointment, int, error) {
	if err := s.guard.Authorize(p, authz.CapUseAppointments); err != nil {
		return nil, 0, err
	}

	if p.IsDoctor() {
		if filters.DoctorID != nil {
			return nil, 0, apperrors.Forbidden("doctors can only view their own appointments")
		}
		filters.DoctorID = p.DoctorID
	} else if filters.DoctorID != nil {
		exists, err := s.doctorRepo.Exists(ctx, *filters.DoctorID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to check doctor: %w", err)
		}
		if !exists {
			return nil, 0, apperrors.NotFound("doctor")
		}
	}

	if filters.PatientID != nil {
		exists, err := s.patientRepo.Exists(ctx, *filters.PatientID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to check patient: %w", err)
		}
		if !exists {
			return nil, 0, apperrors.NotFound("patient")
		}
	}

	if filters.Status != nil && !filters.Status.Valid() {
		return nil, 0, apperrors.InvalidInput(invalidStatusMsg, nil)
	}

	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, p model.Principal, id int64) (*model.Appointment, error) {
	if err := s.guard.Authorize(p, authz.CapUseAppointments); err != nil {
		return nil, err
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireDoctorScope(p, apt.DoctorID, "view this appointment"); err != nil {
		return nil, err
	}
	return apt, nil
}

// Update mutates an appointment. Patient/doctor reassignment is admin-only.
// A changed slot re-runs the future-date rule and the conflict check with the
// appointment's own id excluded, inside the update transaction.
func (s *Service) Update(ctx context.Context, p model.Principal, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := s.guard.Authorize(p, authz.CapUseAppointments); err != nil {
		return nil, err
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireDoctorScope(p, apt.DoctorID, "update this appointment"); err != nil {
		return nil, err
	}

	if req.DoctorID != nil || req.PatientID != nil {
		if err := s.guard.Authorize(p, authz.CapReassignAppointment); err != nil {
			return nil, err
		}
	}

	if req.PatientID != nil {
		exists, err := s.patientRepo.Exists(ctx, *req.PatientID)
		if err != nil {
			return nil, fmt.Errorf("failed to check patient: %w", err)
		}
		if !exists {
			return nil, apperrors.NotFound("patient")
		}
		apt.PatientID = *req.PatientID
	}

	slotChanged := false
	if req.DoctorID != nil {
		exists, err := s.doctorRepo.Exists(ctx, *req.DoctorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check doctor: %w", err)
		}
		if !exists {
			return nil, apperrors.NotFound("doctor")
		}
		if *req.DoctorID != apt.DoctorID {
			slotChanged = true
		}
		apt.DoctorID = *req.DoctorID
	}

	if req.Cost != nil && req.Cost.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.InvalidInput("appointment cost must be greater than zero", nil)
	}

	if req.DateTime != nil {
		if !req.DateTime.After(s.now()) {
			return nil, apperrors.InvalidInput("appointment date and time must be in the future", nil)
		}
		apt.DateTime = *req.DateTime
		slotChanged = true
	}

	if req.Reason != nil {
		apt.Reason = req.Reason
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.InvalidInput(invalidStatusMsg, nil)
		}
		apt.Status = *req.Status
	}

	if req.Cost != nil {
		apt.Cost = *req.Cost
	}

	if err := s.repo.UpdateChecked(ctx, apt, slotChanged); err != nil {
		return nil, err
	}
	return apt, nil
}

// Cancel sets status=canceled. Canceling an already-canceled appointment is
// rejected rather than treated as a no-op.
func (s *Service) Cancel(ctx context.Context, p model.Principal, id int64) error {
	if err := s.guard.Authorize(p, authz.CapUseAppointments); err != nil {
		return err
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.RequireDoctorScope(p, apt.DoctorID, "cancel this appointment"); err != nil {
		return err
	}

	if !model.CanTransition(apt.Status, model.AppointmentStatusCanceled) {
		return apperrors.InvalidInput("appointment is already canceled", nil)
	}

	apt.Status = model.AppointmentStatusCanceled
	return s.repo.UpdateChecked(ctx, apt, false)
}
