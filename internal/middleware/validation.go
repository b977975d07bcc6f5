package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "sedash/internal/errors"
)

// Validator validates request payloads against struct tags and query
// parameters against simple bounds.
type Validator struct {
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewValidator creates a request validator with the domain's custom rules
// registered.
func NewValidator(errorHandler *apierrors.ErrorHandler) *Validator {
	v := validator.New()

	v.RegisterValidation("geocode", isValidGeoCode)
	v.RegisterValidation("indicator", isValidIndicatorID)

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate:     v,
		errorHandler: errorHandler,
	}
}

// ValidateStruct validates a struct and returns a renderable problem on
// failure.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make([]map[string]string, 0, 4)
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, map[string]string{
			"field":   fe.Field(),
			"message": formatFieldError(fe),
		})
	}

	return apierrors.NewProblemDetails(
		http.StatusBadRequest,
		apierrors.TypeValidation,
		"Validation Failed",
		"request validation failed",
		"",
	).WithExtension("errors", fields)
}

// IntParam reads an integer query parameter with bounds, falling back to
// defaultValue when absent. Responds with a validation problem and returns
// false on bad input.
func (v *Validator) IntParam(w http.ResponseWriter, r *http.Request, param string, min, max, defaultValue int) (int, bool) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return defaultValue, true
	}

	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		v.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			param, fmt.Sprintf("%s must be a valid integer", param), r.URL.Path))
		return 0, false
	}

	if n < min || n > max {
		v.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			param, fmt.Sprintf("%s must be between %d and %d", param, min, max), r.URL.Path))
		return 0, false
	}

	return n, true
}

// RequiredParam reads a required string query parameter. Responds with a
// validation problem and returns false when it is missing.
func (v *Validator) RequiredParam(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	value := r.URL.Query().Get(param)
	if value == "" {
		v.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			param, fmt.Sprintf("%s is required", param), r.URL.Path))
		return "", false
	}
	return value, true
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "geocode":
		return fmt.Sprintf("%s must be a valid geography code", field)
	case "indicator":
		return fmt.Sprintf("%s must be a valid indicator id", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// isValidGeoCode accepts uppercase alphanumeric codes with optional dashes,
// e.g. "IQ", "IQ-BG", "IN-UP-LKO".
func isValidGeoCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) < 2 || len(code) > 20 {
		return false
	}
	for _, ch := range code {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-') {
			return false
		}
	}
	return true
}

// isValidIndicatorID accepts lowercase snake_case identifiers, e.g.
// "literacy_rate".
func isValidIndicatorID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > 64 {
		return false
	}
	for _, ch := range id {
		if !((ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_') {
			return false
		}
	}
	return true
}
