package repository

import (
	"context"
	"time"

	"github.com/clinicflow/clinic-api/internal/model"
)

// UserRepository persists login accounts
type UserRepository interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// CreateAdmin inserts the admin user and runs afterInsert inside the
	// same transaction; any failure rolls the insert back.
	CreateAdmin(ctx context.Context, user *model.User, afterInsert func() error) error
}

// DoctorRepository persists doctor profiles
type DoctorRepository interface {
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*model.Doctor, int, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// CreateWithUser inserts the login account and the doctor profile in
	// one transaction.
	CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error
}

// PatientRepository persists patient records
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, int, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// AppointmentRepository persists appointments and owns the scheduling
// transaction boundaries.
type AppointmentRepository interface {
	// CreateScheduled runs the whole create sequence in one transaction:
	// patient exists, doctor exists, then the caller's preInsert checks,
	// then the double-booking conflict check, then the insert. A partial
	// unique index on (doctor_id, date_time) for scheduled rows is the
	// authoritative backstop for concurrent creates.
	CreateScheduled(ctx context.Context, apt *model.Appointment, preInsert func() error) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	// UpdateChecked re-runs the conflict check (excluding the appointment's
	// own id) and the update inside one transaction when the slot changed.
	UpdateChecked(ctx context.Context, apt *model.Appointment, checkConflict bool) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, int, error)
}

// PrescriptionRepository persists prescriptions
type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.Prescription, int, error)
}

// BillingRepository runs the read-only billing period queries
type BillingRepository interface {
	CompletedAppointments(ctx context.Context, year int, month *int) ([]model.BillingAppointment, error)
	IssuedPrescriptions(ctx context.Context, year int, month *int) ([]model.BillingPrescription, error)
}

// TokenRepository tracks revoked refresh tokens
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
