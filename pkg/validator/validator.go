package validator

import (
	"slices"
	"strings"

	"acadiasafe/internal/domain"

	"github.com/go-playground/validator/v10"
)

// CampusDomain is the institutional e-mail domain accepted at signup.
const CampusDomain = "acadiau.ca"

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterCustomValidations(validate)
}

func RegisterCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("lat", validateLat)
	_ = v.RegisterValidation("lng", validateLng)
	_ = v.RegisterValidation("campus_email", validateCampusEmail)
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("incident_type", validateIncidentType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Instance exposes the shared validator for callers that translate
// field errors themselves.
func Instance() *validator.Validate {
	return validate
}

func IsCampusEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+CampusDomain)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

func validateCampusEmail(fl validator.FieldLevel) bool {
	return IsCampusEmail(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateIncidentType(fl validator.FieldLevel) bool {
	return slices.Contains(domain.IncidentTypes, fl.Field().String())
}
