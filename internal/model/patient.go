package model

import "time"

// Gender enumeration for patient records
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient is a pure record with no login identity
type Patient struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	DOB         Date      `db:"dob" json:"dob"`
	Gender      Gender    `db:"gender" json:"gender"`
	Phone       string    `db:"phone" json:"phone"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Address     string    `db:"address" json:"address"`
	InsuranceID *string   `db:"insurance_id" json:"insurance_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreatePatientRequest struct {
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	DOB         Date    `json:"dob" binding:"required"`
	Gender      Gender  `json:"gender" binding:"required"`
	Phone       string  `json:"phone" binding:"required,max=20"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     string  `json:"address" binding:"required"`
	InsuranceID *string `json:"insurance_id" binding:"omitempty,max=50"`
}

type UpdatePatientRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	DOB         *Date   `json:"dob"`
	Gender      *Gender `json:"gender"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	InsuranceID *string `json:"insurance_id" binding:"omitempty,max=50"`
}

// PatientFilters narrows patient listing
type PatientFilters struct {
	Name   string
	Limit  int
	Offset int
}
