package model

import "time"

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCanceled:
		return true
	}
	return false
}

// statusTransitions is the permitted transition set for status updates.
// Updates may move between any pair of valid states, including back out of
// completed; only canceled -> canceled is rejected, so a second cancel is an
// observable error rather than a silent no-op.
var statusTransitions = map[AppointmentStatus]map[AppointmentStatus]bool{
	AppointmentStatusScheduled: {
		AppointmentStatusScheduled: true,
		AppointmentStatusCompleted: true,
		AppointmentStatusCanceled:  true,
	},
	AppointmentStatusCompleted: {
		AppointmentStatusScheduled: true,
		AppointmentStatusCompleted: true,
		AppointmentStatusCanceled:  true,
	},
	AppointmentStatusCanceled: {
		AppointmentStatusScheduled: true,
		AppointmentStatusCompleted: true,
	},
}

// CanTransition reports whether moving from one status to another is permitted
func CanTransition(from, to AppointmentStatus) bool {
	return statusTransitions[from][to]
}

// Appointment links a patient and a doctor for a scheduled slot
type Appointment struct {
	ID        int64             `db:"id" json:"id"`
	PatientID int64             `db:"patient_id" json:"patient_id"`
	DoctorID  int64             `db:"doctor_id" json:"doctor_id"`
	DateTime  time.Time         `db:"date_time" json:"date_time"`
	Reason    *string           `db:"reason" json:"reason,omitempty"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Cost      Money             `db:"appointment_cost" json:"appointment_cost"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	DoctorID  int64     `json:"doctor_id" binding:"required"`
	DateTime  time.Time `json:"date_time" binding:"required"`
	Reason    *string   `json:"reason"`
	Cost      Money     `json:"appointment_cost" binding:"required"`
}

type UpdateAppointmentRequest struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	DateTime  *time.Time         `json:"date_time"`
	Reason    *string            `json:"reason"`
	Status    *AppointmentStatus `json:"status"`
	Cost      *Money             `json:"appointment_cost"`
}

// AppointmentFilters narrows appointment listing
type AppointmentFilters struct {
	Date      *Date
	PatientID *int64
	DoctorID  *int64
	Status    *AppointmentStatus
	Limit     int
	Offset    int
}
