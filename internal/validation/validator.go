// Package validation provides struct validation for loaded configuration data using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	domainerrors "github.com/listenupapp/albumtag/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use YAML tag names in error messages, matching the catalog file keys.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("yaml")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// notblank rejects whitespace-only strings, which required accepts.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Collect all field errors, keyed by their path below the root struct.
	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[fieldPath(e)] = v.friendlyMessage(e)
	}

	fields := make([]string, 0, len(fieldErrors))
	for field, msg := range fieldErrors {
		fields = append(fields, field+" "+msg)
	}
	sort.Strings(fields)

	return domainerrors.ValidationWithDetails("validation failed: "+strings.Join(fields, "; "), fieldErrors)
}

// fieldPath drops the root struct name from a namespace such as
// "file.compositions[op13].movements[1]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	for i := range len(ns) {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ns
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		if e.Kind() == reflect.Slice || e.Kind() == reflect.Map {
			return fmt.Sprintf("must have at least %s entries", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "is invalid"
	}
}
