package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/contabilisync/backend/models"
)

// AppointmentService owns appointment records and enforces the
// one-slot-per-accountant invariant: for a given accountant, (date, time)
// is unique among appointments whose status is not cancelled.
type AppointmentService struct {
	db    *gorm.DB
	users *UserService
}

func NewAppointmentService(db *gorm.DB, users *UserService) *AppointmentService {
	return &AppointmentService{db: db, users: users}
}

func (s *AppointmentService) List() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Accountant").Preload("Taxpayer").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) Get(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Preload("Accountant").Preload("Taxpayer").First(&appointment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *AppointmentService) ListByAccountant(accountantID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Accountant").Preload("Taxpayer").
		Where("accountant_id = ?", accountantID).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *AppointmentService) ListByTaxpayer(taxpayerID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Accountant").Preload("Taxpayer").
		Where("taxpayer_id = ?", taxpayerID).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// AppointmentInput carries the writable fields of an appointment.
type AppointmentInput struct {
	ID           uint                     `json:"id"`
	AccountantID uint                     `json:"accountant_id"`
	TaxpayerID   uint                     `json:"taxpayer_id"`
	Date         time.Time                `json:"date"`
	Time         string                   `json:"time"`
	Status       models.AppointmentStatus `json:"status"`
	Notes        string                   `json:"notes"`
}

func (in AppointmentInput) validate() error {
	if in.Date.IsZero() {
		return ErrInvalidInput
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return ErrInvalidInput
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		return ErrInvalidInput
	}
	return nil
}

// Create validates the participants and the slot, then persists. The slot
// check re-runs inside the insert transaction, and the partial unique index
// on (accountant_id, date, time) backs it up, so two concurrent bookings for
// the same slot cannot both land.
func (s *AppointmentService) Create(in AppointmentInput) (*models.Appointment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ok, err := s.users.Exists(in.AccountantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidAccountant
	}

	ok, err = s.users.Exists(in.TaxpayerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTaxpayer
	}

	appointment := models.Appointment{
		AccountantID: in.AccountantID,
		TaxpayerID:   in.TaxpayerID,
		Date:         in.Date,
		Time:         in.Time,
		Status:       in.Status,
		Notes:        in.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		available, err := slotAvailable(tx, in.Date, in.Time, in.AccountantID, 0)
		if err != nil {
			return err
		}
		if !available {
			return ErrSlotUnavailable
		}
		return tx.Create(&appointment).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// IsSlotAvailable reports whether the accountant is free on that calendar day
// at that time of day. Cancelled appointments do not occupy their slot.
func (s *AppointmentService) IsSlotAvailable(date time.Time, timeOfDay string, accountantID uint) (bool, error) {
	return slotAvailable(s.db, date, timeOfDay, accountantID, 0)
}

// slotAvailable runs the availability predicate on the given handle, which
// may be a transaction. excludeID, when non-zero, leaves one record out of
// the conflict check so an appointment can be saved onto its own slot.
func slotAvailable(tx *gorm.DB, date time.Time, timeOfDay string, accountantID uint, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.Appointment{}).
		Where("accountant_id = ? AND date = ? AND time = ? AND status <> ?",
			accountantID, models.DateOnly(date), timeOfDay, models.StatusCancelled)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Update replaces all mutable fields of an appointment. The availability
// check runs again, excluding the record itself, so an update cannot move an
// appointment onto an occupied slot but may keep its own.
func (s *AppointmentService) Update(id uint, in AppointmentInput) (*models.Appointment, error) {
	if in.ID != id {
		return nil, ErrIDMismatch
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	appointment, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	appointment.AccountantID = in.AccountantID
	appointment.TaxpayerID = in.TaxpayerID
	appointment.Date = in.Date
	appointment.Time = in.Time
	appointment.Status = in.Status
	appointment.Notes = in.Notes
	appointment.Accountant = nil
	appointment.Taxpayer = nil
	// Save runs no create hook, so the empty-status default applies here too.
	if appointment.Status == "" {
		appointment.Status = models.StatusPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if appointment.Status != models.StatusCancelled {
			available, err := slotAvailable(tx, in.Date, in.Time, in.AccountantID, id)
			if err != nil {
				return err
			}
			if !available {
				return ErrSlotUnavailable
			}
		}
		return tx.Save(appointment).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(id uint) error {
	var appointment models.Appointment
	err := s.db.First(&appointment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&appointment).Error
}
