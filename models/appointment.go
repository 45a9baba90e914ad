package models

import (
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is a scheduled meeting between a taxpayer and an accountant.
// Date carries day granularity only; Time is the slot's time of day in
// "HH:MM" 24h format, independent of Date.
type Appointment struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	AccountantID uint              `json:"accountant_id"`
	Accountant   *User             `json:"accountant,omitempty" gorm:"foreignKey:AccountantID"`
	TaxpayerID   uint              `json:"taxpayer_id"`
	Taxpayer     *User             `json:"taxpayer,omitempty" gorm:"foreignKey:TaxpayerID"`
	Date         time.Time         `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// BeforeSave truncates Date to midnight UTC so slot comparisons are exact
// column matches regardless of any time-of-day component sent by clients.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.Date = DateOnly(a.Date)
	return nil
}

// DateOnly strips the time-of-day component, keeping the calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
