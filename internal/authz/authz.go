// Package authz is the single authorization decision point. Every service
// consults it with the request principal and a capability before touching
// the store; denial aborts the operation with Forbidden.
package authz

import (
	"github.com/clinicflow/clinic-api/internal/model"
	"github.com/clinicflow/clinic-api/pkg/errors"
)

// Capability is an operation class subject to role rules
type Capability int

const (
	// CapManageAccounts covers creating doctor/admin accounts and
	// listing/viewing doctor profiles.
	CapManageAccounts Capability = iota
	// CapManagePatients covers patient CRUD. Any doctor may touch any
	// patient record.
	CapManagePatients
	// CapUseAppointments covers the appointment lifecycle. Doctors are
	// additionally ownership-scoped via RequireDoctorScope.
	CapUseAppointments
	// CapReassignAppointment covers changing an appointment's patient or
	// doctor on update.
	CapReassignAppointment
	// CapIssuePrescription covers prescription creation. Doctor only;
	// admin is rejected.
	CapIssuePrescription
	// CapViewPrescriptions covers prescription reads, doctor-scoped.
	CapViewPrescriptions
	// CapViewBilling covers billing reports.
	CapViewBilling
)

var roleCapabilities = map[model.Role]map[Capability]bool{
	model.RoleAdmin: {
		CapManageAccounts:      true,
		CapManagePatients:      true,
		CapUseAppointments:     true,
		CapReassignAppointment: true,
		CapViewPrescriptions:   true,
		CapViewBilling:         true,
	},
	model.RoleDoctor: {
		CapManagePatients:    true,
		CapUseAppointments:   true,
		CapIssuePrescription: true,
		CapViewPrescriptions: true,
	},
}

var capabilityDenials = map[Capability]string{
	CapManageAccounts:      "admin access required",
	CapManagePatients:      "admin or doctor access required",
	CapUseAppointments:     "admin or doctor access required",
	CapReassignAppointment: "only admins can reassign appointments",
	CapIssuePrescription:   "only doctors can create prescriptions",
	CapViewPrescriptions:   "admin or doctor access required",
	CapViewBilling:         "admin access required",
}

// Guard decides whether an operation may proceed for a principal
type Guard interface {
	Authorize(p model.Principal, cap Capability) error
	RequireDoctorScope(p model.Principal, doctorID int64, action string) error
}

type guard struct{}

func NewGuard() Guard {
	return guard{}
}

// Authorize allows the operation class or fails with Forbidden
func (guard) Authorize(p model.Principal, cap Capability) error {
	if roleCapabilities[p.Role][cap] {
		return nil
	}
	return errors.Forbidden(capabilityDenials[cap])
}

// RequireDoctorScope enforces ownership for doctor principals: a doctor may
// only act on records bound to their own doctor id. Admins pass unscoped.
// Out-of-scope requests fail with Forbidden, never silently re-scoped.
func (guard) RequireDoctorScope(p model.Principal, doctorID int64, action string) error {
	if p.IsAdmin() {
		return nil
	}
	if p.OwnsDoctor(doctorID) {
		return nil
	}
	return errors.Forbidden("you are not authorized to " + action)
}
