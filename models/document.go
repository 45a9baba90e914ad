package models

import (
	"time"
)

type DocumentType string

const (
	DocLaborCertificate DocumentType = "labor_certificate"
	DocBankCertificate  DocumentType = "bank_certificate"
	DocExpenseInvoices  DocumentType = "expense_invoices"
	DocPriorDeclaration DocumentType = "prior_declaration"
	DocOther            DocumentType = "other"
)

// ValidDocumentType reports whether t is a known document classification.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocLaborCertificate, DocBankCertificate, DocExpenseInvoices,
		DocPriorDeclaration, DocOther:
		return true
	}
	return false
}

// Document records a file uploaded by a taxpayer. FilePath is the opaque
// locator handed back by the file store; the bytes themselves never live in
// the database.
type Document struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	TaxpayerID  uint         `json:"taxpayer_id"`
	Taxpayer    *User        `json:"taxpayer,omitempty" gorm:"foreignKey:TaxpayerID"`
	Name        string       `json:"name"`
	FilePath    string       `json:"file_path"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	Type        DocumentType `json:"type"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
