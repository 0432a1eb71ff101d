package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// Whitespace as browsers see it: ASCII spacing, \v, every Unicode space separator and BOM.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	looseEmailPattern = regexp.MustCompile(`[^` + space + `]+@[^` + space + `]+\.[^` + space + `]+`)
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	whitespacePattern = regexp.MustCompile(`[` + space + `]`)
)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Non-empty once surrounding whitespace is gone
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Something@something.something, no whitespace in any part
	validate.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})

	// 16 digits once every whitespace character is removed
	validate.RegisterValidation("card_number", func(fl validator.FieldLevel) bool {
		return cardNumberPattern.MatchString(whitespacePattern.ReplaceAllString(fl.Field().String(), ""))
	})

	// MM/YY with MM in 01-12
	validate.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
}

// Engine exposes the shared validator so packages can register struct-level rules.
func Engine() *validator.Validate {
	return validate
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		if _, seen := errors[field]; seen {
			continue
		}
		switch err.Tag() {
		case "required", "notblank":
			errors[field] = "This field is required"
		case "email", "loose_email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "card_number":
			errors[field] = "Card number must be 16 digits"
		case "card_expiry":
			errors[field] = "Expiration date must be in MM/YY format"
		case "cvv":
			errors[field] = "CVV must be 3 or 4 digits"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidationErrors runs struct validation and returns the raw per-field failures.
func ValidationErrors(s interface{}) validator.ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return verrs
	}
	return nil
}
