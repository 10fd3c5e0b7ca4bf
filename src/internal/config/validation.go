package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	cerrors "github.com/maksimkurb/configurator/src/internal/errors"
)

var (
	// Section and key names become subcommand and --flag names.
	nameRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

// schemaDecl is the untyped form of a Schema used for structural validation.
type schemaDecl struct {
	Sections map[string]map[string]string `validate:"required,min=1,dive,keys,schema_name,endkeys,required,min=1,dive,keys,schema_name,endkeys,required"`
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must declare at least %s entry", e.Param())
	case "schema_name":
		return fmt.Sprintf("name %q must start with a letter or digit and contain only letters, digits, '_', '.' and '-'", fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Path inside the declaration (e.g., "schema[network][port]")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("schema_name", validateSchemaName); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return "schema"
	})
}

// Custom validator: section or key name
func validateSchemaName(fl validator.FieldLevel) bool {
	return nameRegexp.MatchString(fl.Field().String())
}

func (d schemaDecl) validate() error {
	if err := validate.Struct(d); err != nil {
		ve := convertValidatorErrors(err)
		if len(ve) == 0 {
			return cerrors.NewSchemaError("invalid schema", err)
		}
		return cerrors.NewSchemaError("invalid schema", ve)
	}
	return nil
}

func convertValidatorErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: strings.TrimPrefix(e.Namespace(), "schemaDecl."),
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
