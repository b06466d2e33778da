package errors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Messages flattens the collection into "field message" lines.
func (ve ValidationErrors) Messages() []string {
	out := make([]string, 0, len(ve))
	for _, e := range ve {
		if e.Field == "" {
			out = append(out, e.Message)
			continue
		}
		out = append(out, e.Field+" "+e.Message)
	}
	return out
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// FromMessages wraps plain template validator messages. Messages of the form
// "blocks[0].pattern is required" are split into field and message.
func FromMessages(messages []string) ValidationErrors {
	var out ValidationErrors
	for _, m := range messages {
		field, rest, ok := strings.Cut(m, " ")
		if !ok || !strings.ContainsAny(field, ".[") {
			out = append(out, ValidationError{Message: m})
			continue
		}
		out = append(out, ValidationError{Field: field, Message: rest})
	}
	return out
}

// ToValidationErrors converts validator.ValidationErrors to our custom type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if validatorErr, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validatorErr {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())

	// Custom validators
	case "question_type":
		return "must be a known question type (essay, shortanswer, multichoice, matching, truefalse)"
	case "not_blank":
		return "must not be blank"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
