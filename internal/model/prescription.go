package model

import "time"

// Prescription is owned exclusively by its appointment (cascade delete)
type Prescription struct {
	ID            int64     `db:"id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	Medication    string    `db:"medication" json:"medication"`
	Dosage        string    `db:"dosage" json:"dosage"`
	Instructions  string    `db:"instructions" json:"instructions"`
	DateIssued    Date      `db:"date_issued" json:"date_issued"`
	Cost          *Money    `db:"prescription_cost" json:"prescription_cost,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type CreatePrescriptionRequest struct {
	AppointmentID int64  `json:"appointment_id" binding:"required"`
	Medication    string `json:"medication" binding:"required,max=100"`
	Dosage        string `json:"dosage" binding:"required,max=100"`
	Instructions  string `json:"instructions" binding:"required"`
	DateIssued    Date   `json:"date_issued" binding:"required"`
	Cost          *Money `json:"prescription_cost"`
}

// PrescriptionFilters narrows prescription listing
type PrescriptionFilters struct {
	PatientID     *int64
	AppointmentID *int64
	DoctorID      *int64
	Limit         int
	Offset        int
}
