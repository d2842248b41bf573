package model

import "time"

// Role classifies a login account
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDoctor Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor
}

// User represents a login account. Patients carry no login identity.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Principal is the authenticated caller for the current request,
// threaded explicitly through every operation.
type Principal struct {
	UserID   int64
	Role     Role
	DoctorID *int64
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsDoctor() bool {
	return p.Role == RoleDoctor
}

// OwnsDoctor reports whether the principal is the doctor with the given id
func (p Principal) OwnsDoctor(doctorID int64) bool {
	return p.IsDoctor() && p.DoctorID != nil && *p.DoctorID == doctorID
}

// CreateAdminRequest provisions a new admin account
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Message is a minimal acknowledgement body
type Message struct {
	Message string `json:"message"`
}
