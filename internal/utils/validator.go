// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vastra/catalog-backend/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("sku", validateSKU)
	// Report fields by their json name so error payloads match the wire shape.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// SKUs are upper/lowercase alphanumerics with dashes, as produced by bulk
// expansion ("TSHIRT-M"). Empty is allowed; a missing SKU is not an error.
func validateSKU(fl validator.FieldLevel) bool {
	sku := fl.Field().String()
	if sku == "" {
		return true
	}
	matched, _ := regexp.MatchString("^[a-zA-Z0-9_-]+$", sku)
	return matched
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// FirstValidationError folds a validator.ValidationErrors into the typed
// error the services return to their callers.
func FirstValidationError(err error) *apperrors.ValidationError {
	if err == nil {
		return nil
	}
	if errs := GetValidationErrors(err); len(errs) > 0 {
		return apperrors.NewValidationError(errs[0].Field, errs[0].Message)
	}
	return apperrors.NewValidationError("", err.Error())
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must have at least " + e.Param() + " entries or characters"
	case "max":
		return e.Field() + " must have at most " + e.Param() + " entries or characters"
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lte":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "sku":
		return e.Field() + " may only contain letters, numbers, dashes and underscores"
	default:
		return e.Field() + " is invalid"
	}
}
