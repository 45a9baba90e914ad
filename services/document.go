package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contabilisync/backend/models"
	"github.com/contabilisync/backend/storage"
)

// DocumentService associates uploaded files with taxpayers. Byte storage is
// delegated to the file store; only metadata lives in the database.
type DocumentService struct {
	db    *gorm.DB
	users *UserService
	files storage.FileStore
}

func NewDocumentService(db *gorm.DB, users *UserService, files storage.FileStore) *DocumentService {
	return &DocumentService{db: db, users: users, files: files}
}

func (s *DocumentService) List() ([]models.Document, error) {
	var documents []models.Document
	if err := s.db.Preload("Taxpayer").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (s *DocumentService) Get(id uint) (*models.Document, error) {
	var document models.Document
	err := s.db.Preload("Taxpayer").First(&document, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (s *DocumentService) ListByTaxpayer(taxpayerID uint) ([]models.Document, error) {
	var documents []models.Document
	err := s.db.Preload("Taxpayer").
		Where("taxpayer_id = ?", taxpayerID).
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// DocumentInput carries the metadata accompanying an upload.
type DocumentInput struct {
	TaxpayerID  uint                `json:"taxpayer_id"`
	Type        models.DocumentType `json:"type"`
	Description string              `json:"description"`
}

// Create stores the file bytes under a collision-resistant name and records
// the metadata. The owner must be a registered taxpayer; the upload timestamp
// is assigned here, never taken from the client.
func (s *DocumentService) Create(in DocumentInput, fileBytes []byte, fileName string) (*models.Document, error) {
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidInput)
	}
	if in.Type != "" && !models.ValidDocumentType(in.Type) {
		return nil, ErrInvalidInput
	}

	owner, err := s.users.Get(in.TaxpayerID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidOwner
	}
	if err != nil {
		return nil, err
	}
	if owner.Role != models.RoleTaxpayer {
		return nil, ErrInvalidOwner
	}

	storedName := uuid.New().String() + "_" + fileName
	locator, err := s.files.Write(storedName, fileBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	docType := in.Type
	if docType == "" {
		docType = models.DocOther
	}
	document := models.Document{
		TaxpayerID:  in.TaxpayerID,
		Name:        fileName,
		FilePath:    locator,
		UploadedAt:  time.Now().UTC(),
		Type:        docType,
		Description: in.Description,
	}
	if err := s.db.Create(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// Delete removes the stored file and then the metadata record. A file that is
// already gone does not block the delete; any other storage failure does.
func (s *DocumentService) Delete(id uint) error {
	var document models.Document
	err := s.db.First(&document, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.files.Delete(document.FilePath); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return s.db.Delete(&document).Error
}

// Download returns the file bytes, the MIME type derived from the display
// name's extension, and the display name itself.
func (s *DocumentService) Download(id uint) ([]byte, string, string, error) {
	var document models.Document
	err := s.db.First(&document, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", ErrNotFound
	}
	if err != nil {
		return nil, "", "", err
	}

	ok, err := s.files.Exists(document.FilePath)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return nil, "", "", ErrFileMissing
	}

	data, err := s.files.Read(document.FilePath)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, "", "", ErrFileMissing
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return data, contentTypeFor(filepath.Ext(document.Name)), document.Name, nil
}

// contentTypeFor maps a file extension to its MIME type. Unknown extensions
// fall back to the generic binary stream type.
func contentTypeFor(extension string) string {
	switch strings.ToLower(extension) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".txt":
		return "text/plain"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
