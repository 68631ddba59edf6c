// Package forms validates user input on the client before anything is sent.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"acadiasafe/internal/domain"
	pkgvalidator "acadiasafe/pkg/validator"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a field name to a message fit for display.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Normalize trims and lower-cases the email. Validation runs on the result.
func (f Login) Normalize() Login {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return f
}

func (f Login) Request() domain.LoginRequest {
	return domain.LoginRequest{Email: f.Normalize().Email, Password: f.Password}
}

type Signup struct {
	FullName        string `form:"full_name" validate:"required,notblank"`
	Email           string `form:"email" validate:"required,campus_email"`
	Phone           string `form:"phone" validate:"required,notblank"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f Signup) Normalize() Signup {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = strings.TrimSpace(f.Phone)
	return f
}

func (f Signup) Request() domain.SignupRequest {
	n := f.Normalize()
	return domain.SignupRequest{
		FullName: n.FullName,
		Email:    n.Email,
		Phone:    n.Phone,
		Password: n.Password,
	}
}

type Escort struct {
	PickupName  string `form:"pickup_name"`
	Destination string `form:"destination" validate:"required,notblank"`
	Notes       string `form:"notes"`
}

type Contact struct {
	Name         string `form:"name" validate:"required,notblank"`
	Phone        string `form:"phone" validate:"required,notblank"`
	Relationship string `form:"relationship"`
}

func (f Contact) Request() domain.CreateContactRequest {
	req := domain.CreateContactRequest{Name: strings.TrimSpace(f.Name), Phone: strings.TrimSpace(f.Phone)}
	if r := strings.TrimSpace(f.Relationship); r != "" {
		req.Relationship = &r
	}
	return req
}

type Incident struct {
	Category     string   `form:"incident_type" validate:"required,incident_type"`
	Description  string   `form:"description" validate:"required,notblank"`
	LocationName string   `form:"location_name"`
	Photos       [][]byte `form:"photos" validate:"max=3,dive,max=2097152"`
	IsAnonymous  bool     `form:"is_anonymous"`
	WantsContact bool     `form:"wants_contact"`
	ContactPhone string   `form:"contact_phone"`
}

// ValidateIncident applies the struct rules plus the optional requirement
// that a reporter asking for follow-up leaves a phone number.
func ValidateIncident(f Incident, requireContactPhone bool) error {
	errs := ValidationErrors{}
	if err := Validate(f); err != nil {
		var ve ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		errs = ve
	}
	if requireContactPhone && f.WantsContact && strings.TrimSpace(f.ContactPhone) == "" {
		errs["contact_phone"] = "Contact phone is required when you ask to be contacted"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate runs the struct rules and returns ValidationErrors on failure.
func Validate(form any) error {
	err := pkgvalidator.ValidateStruct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("forms: %w", err)
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		name := fieldName(t, fe.StructField())
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = message(fe)
	}
	return out
}

func fieldName(t reflect.Type, structField string) string {
	// dive errors report e.g. "Photos[0]"
	base, _, _ := strings.Cut(structField, "[")
	if f, ok := t.FieldByName(base); ok {
		if tag := f.Tag.Get("form"); tag != "" {
			return tag
		}
	}
	return strings.ToLower(base)
}

func message(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "[", " [")
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "campus_email":
		return "Please use your Acadia University email (@" + pkgvalidator.CampusDomain + ")"
	case "min":
		if fe.Field() == "Password" {
			return "Password must be at least " + fe.Param() + " characters"
		}
		return label + " is too short"
	case "eqfield":
		return "Passwords do not match"
	case "max":
		if strings.HasPrefix(fe.Field(), "Photos[") {
			return "Each photo must be 2 MB or smaller"
		}
		if fe.Field() == "Photos" {
			return fmt.Sprintf("You can attach at most %d photos", domain.MaxIncidentPhotos)
		}
		return label + " is too long"
	case "incident_type":
		return "Choose an incident type"
	}
	return label + " is invalid"
}
