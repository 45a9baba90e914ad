package models

import (
	"time"
)

type UserRole string

const (
	RoleTaxpayer   UserRole = "taxpayer"
	RoleAccountant UserRole = "accountant"
	RoleAdmin      UserRole = "admin"
)

// ValidRole reports whether r is one of the three supported roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleTaxpayer, RoleAccountant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name"`
	Email        string   `json:"email" gorm:"uniqueIndex"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	// Specialty and LicenseNumber only carry meaning for accountants.
	Specialty     string    `json:"specialty,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
