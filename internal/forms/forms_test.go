package forms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validSignup() Signup {
	return Signup{
		FullName:        "Jane Doe",
		Email:           "jane@acadiau.ca",
		Phone:           "902-555-0100",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Signup)
		field   string
		message string
	}{
		{name: "valid", mutate: func(*Signup) {}},
		{name: "upper case campus email", mutate: func(s *Signup) { s.Email = "Jane@ACADIAU.CA" }},
		{name: "non campus", mutate: func(s *Signup) { s.Email = "jane@gmail.com" }, field: "email", message: "Please use your Acadia University email (@acadiau.ca)"},
		{name: "short password", mutate: func(s *Signup) { s.Password, s.ConfirmPassword = "abc", "abc" }, field: "password", message: "Password must be at least 6 characters"},
		{name: "mismatch", mutate: func(s *Signup) { s.ConfirmPassword = "secret2" }, field: "confirm_password", message: "Passwords do not match"},
		{name: "blank name", mutate: func(s *Signup) { s.FullName = "   " }, field: "full_name"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := validSignup()
			tt.mutate(&f)
			err := Validate(f)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var ve ValidationErrors
			require.True(t, errors.As(err, &ve), "got %v", err)
			require.True(t, ve.Has(tt.field), "errors %v", ve)
			if tt.message != "" {
				require.Equal(t, tt.message, ve[tt.field])
			}
		})
	}
}

func TestSignup_RequestNormalises(t *testing.T) {
	t.Parallel()

	f := validSignup()
	f.Email = "  Jane@AcadiaU.ca "
	require.Equal(t, "jane@acadiau.ca", f.Request().Email)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	err := Validate(Login{Email: "", Password: ""})
	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	require.True(t, ve.Has("email"))
	require.True(t, ve.Has("password"))

	require.NoError(t, Validate(Login{Email: "a@acadiau.ca", Password: "x"}))
}

func TestLogin_NormalizeBeforeValidate(t *testing.T) {
	t.Parallel()

	raw := Login{Email: "  A@AcadiaU.ca ", Password: " pw "}
	require.Error(t, Validate(raw))

	n := raw.Normalize()
	require.NoError(t, Validate(n))
	require.Equal(t, "a@acadiau.ca", n.Email)
	require.Equal(t, " pw ", raw.Request().Password)
	require.Equal(t, "a@acadiau.ca", raw.Request().Email)
}

func TestIncident(t *testing.T) {
	t.Parallel()

	ok := Incident{Category: "Theft", Description: "bike"}
	require.NoError(t, ValidateIncident(ok, false))

	bad := Incident{Category: "Jaywalking", Description: " "}
	var ve ValidationErrors
	require.True(t, errors.As(ValidateIncident(bad, false), &ve))
	require.True(t, ve.Has("incident_type"))
	require.True(t, ve.Has("description"))

	tooMany := ok
	tooMany.Photos = [][]byte{{1}, {2}, {3}, {4}}
	require.True(t, errors.As(ValidateIncident(tooMany, false), &ve))
	require.Equal(t, "You can attach at most 3 photos", ve["photos"])

	wantsContact := ok
	wantsContact.WantsContact = true
	require.NoError(t, ValidateIncident(wantsContact, false))
	require.True(t, errors.As(ValidateIncident(wantsContact, true), &ve))
	require.True(t, ve.Has("contact_phone"))
}

func TestContactAndEscort(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(Contact{Name: "Mom"}))
	req := Contact{Name: " Mom ", Phone: "902", Relationship: ""}.Request()
	require.Equal(t, "Mom", req.Name)
	require.Nil(t, req.Relationship)

	var ve ValidationErrors
	require.True(t, errors.As(Validate(Escort{Destination: " "}), &ve))
	require.True(t, ve.Has("destination"))
}
