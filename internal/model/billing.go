package model

// PatientBreakdown is a per-patient subtotal within a billing report
type PatientBreakdown struct {
	PatientID         int64  `json:"patient_id"`
	FullName          string `json:"full_name"`
	AppointmentTotal  Money  `json:"appointment_total"`
	PrescriptionTotal Money  `json:"prescription_total"`
	TotalAmount       Money  `json:"total_amount"`
}

// BillingReport aggregates completed appointments and prescriptions
// for a year and optional month. Derived, never persisted.
type BillingReport struct {
	Year               int                `json:"year"`
	Month              *int               `json:"month"`
	TotalAppointments  int                `json:"total_appointments"`
	TotalPrescriptions int                `json:"total_prescriptions"`
	TotalIncome        Money              `json:"total_income"`
	BreakdownByPatient []PatientBreakdown `json:"breakdown_by_patient"`
}

// BillingAppointment is an appointment row joined with its patient name,
// as read by the billing queries.
type BillingAppointment struct {
	PatientID        int64  `db:"patient_id"`
	PatientFirstName string `db:"first_name"`
	PatientLastName  string `db:"last_name"`
	Cost             Money  `db:"appointment_cost"`
}

// BillingPrescription is a prescription row joined through its appointment
// to the patient, as read by the billing queries.
type BillingPrescription struct {
	PatientID        int64  `db:"patient_id"`
	PatientFirstName string `db:"first_name"`
	PatientLastName  string `db:"last_name"`
	Cost             *Money `db:"prescription_cost"`
}
