package services

import "errors"

var (
	// common errors
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrIDMismatch   = errors.New("id does not match the provided record")

	// user-specific errors
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserReferenced = errors.New("user is referenced by appointments or documents")

	// appointment-specific errors
	ErrInvalidAccountant = errors.New("accountant does not exist")
	ErrInvalidTaxpayer   = errors.New("taxpayer does not exist")
	ErrSlotUnavailable   = errors.New("accountant is not available at that slot")

	// document-specific errors
	ErrInvalidOwner = errors.New("owner is not an existing taxpayer")
	ErrFileMissing  = errors.New("stored file is missing")
	ErrStorage      = errors.New("file storage failure")
)
