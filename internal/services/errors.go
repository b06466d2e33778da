package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/assessment-docgen/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Input errors
	ErrEmptyInput        = errors.New("question bank is empty")
	ErrInputTooLarge     = errors.New("question bank exceeds upload limit")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from errors package
type ValidationErrors = apperrors.ValidationErrors
type ParseError = apperrors.ParseError

// ===== ERROR HELPERS =====

// IsInputRejected checks if the input was refused before parsing
func IsInputRejected(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInputTooLarge) ||
		errors.Is(err, ErrUnsupportedFormat)
}

// IsParseError checks if error represents a structural parse failure
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}
