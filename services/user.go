package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/contabilisync/backend/models"
)

// UserService owns user records: listing, registration, profile updates,
// credential checks. It is handed its DB handle explicitly.
type UserService struct {
	db        *gorm.DB
	passwords *PasswordService
}

func NewUserService(db *gorm.DB, passwords *PasswordService) *UserService {
	return &UserService{db: db, passwords: passwords}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Exists reports whether a user with the given id is registered. Used by the
// appointment and document services for referential checks.
func (s *UserService) Exists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateInput carries the fields a caller may set when registering a user.
// Password arrives in plain text and is hashed before persistence.
type CreateInput struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Password      string          `json:"password"`
	Role          models.UserRole `json:"role"`
	Phone         string          `json:"phone"`
	Specialty     string          `json:"specialty"`
	LicenseNumber string          `json:"license_number"`
}

func (s *UserService) Create(in CreateInput) (*models.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidInput
	}
	if !models.ValidRole(in.Role) {
		return nil, ErrInvalidInput
	}

	// Email matching is exact: no case folding on either side.
	var existing models.User
	if s.db.Where("email = ?", in.Email).First(&existing).RowsAffected > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:          in.Name,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          in.Role,
		Phone:         in.Phone,
		Specialty:     in.Specialty,
		LicenseNumber: in.LicenseNumber,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index catches a concurrent registration that slipped
		// past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// UpdateInput carries the fields overwritten by a profile update. The record
// id must agree with the path id. Password changes go through ChangePassword
// only; an update payload never touches the stored credential.
type UpdateInput struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          models.UserRole `json:"role"`
	Phone         string          `json:"phone"`
	Specialty     string          `json:"specialty"`
	LicenseNumber string          `json:"license_number"`
}

func (s *UserService) Update(id uint, in UpdateInput) (*models.User, error) {
	if in.ID != id {
		return nil, ErrIDMismatch
	}
	if !models.ValidRole(in.Role) {
		return nil, ErrInvalidInput
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	var other models.User
	if s.db.Where("email = ? AND id <> ?", in.Email, id).First(&other).RowsAffected > 0 {
		return nil, ErrDuplicateEmail
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Role = in.Role
	user.Phone = in.Phone
	user.Specialty = in.Specialty
	user.LicenseNumber = in.LicenseNumber

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Users referenced by appointments or documents are
// protected: the delete fails rather than orphaning the dependents.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.Model(&models.Appointment{}).
		Where("accountant_id = ? OR taxpayer_id = ?", id, id).
		Count(&refs).Error; err != nil {
		return err
	}
	if refs == 0 {
		if err := s.db.Model(&models.Document{}).
			Where("taxpayer_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
	}
	if refs > 0 {
		return ErrUserReferenced
	}

	return s.db.Delete(user).Error
}

// Authenticate returns the user matching email and password, or nil. A nil
// result never says whether the email was unknown or the password wrong.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, nil
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.passwords.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, nil
	}
	return &user, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. It answers false, never an error, when the user is unknown or the
// current password does not verify.
func (s *UserService) ChangePassword(id uint, current, newPassword string) (bool, error) {
	user, err := s.Get(id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	ok, verr := s.passwords.Verify(current, user.PasswordHash)
	if verr != nil || !ok {
		return false, nil
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return false, err
	}
	user.PasswordHash = hash
	if err := s.db.Save(user).Error; err != nil {
		return false, err
	}
	return true, nil
}
