package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/assessment-docgen/internal/models"
	"github.com/SAP-F-2025/assessment-docgen/internal/tmpl"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	v := &Validator{structValidator: structValidator}
	v.questionValidator = NewQuestionValidator(v)
	return v
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if verrs := ToValidationErrors(err); len(verrs) > 0 {
			return verrs
		}
		return err
	}
	return nil
}

// ValidateMetadata checks the length limits of task header metadata
func (v *Validator) ValidateMetadata(meta models.Metadata) error {
	return v.Validate(meta)
}

// ValidateTemplate runs the template schema checks on a Config or a generic
// v2 document. Failures are returned as ValidationErrors.
func (v *Validator) ValidateTemplate(raw any) error {
	_, err := tmpl.Decode(raw)
	return err
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	// Question type validation
	validate.RegisterValidation("question_type", validateQuestionType)

	// Rejects empty and whitespace-only strings
	validate.RegisterValidation("not_blank", validateNotBlank)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).Known()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
