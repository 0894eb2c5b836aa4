package domain

import "time"

// Role is the kind of actor an account acts as.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleOwner:
		return true
	}
	return false
}

// Account models a registered actor. Accounts are created unapproved and may
// only authenticate after an administrator approves them.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	NationalID   string    `json:"nationalId,omitempty"`
	UniversityID string    `json:"universityId,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Approved     bool      `json:"approved"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the account stripped of credential material.
func (a Account) Public() Account {
	a.PasswordHash = ""
	return a
}
