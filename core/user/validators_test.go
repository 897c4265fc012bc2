package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/nkamau/elimu/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func Test_validatePassword(t *testing.T) {
	validate := newValidator()

	newUser := func(pwd string) NewUser {
		return NewUser{
			Name:            "Aisha Kamau",
			Email:           "aisha@test.cd",
			Password:        pwd,
			PasswordConfirm: pwd,
			Role:            RoleStudent,
		}
	}

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "aB1!", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "aB1! aB1!", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "12345678", wantTag: pwdNotAllNumTag},
		{name: "no uppercase", pwd: "abcdef1!", wantTag: pwdComplexityTag},
		{name: "no digit", pwd: "Abcdefg!", wantTag: pwdComplexityTag},
		{name: "no special char", pwd: "Abcdefg1", wantTag: pwdComplexityTag},
		{name: "too similar to email", pwd: "Aisha@test.cd1", wantTag: pwdAttrSimTag},
		{name: "strong enough", pwd: "L3tsL34rn!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := newUser(tt.pwd)
			err := validate.Struct(&nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("Struct() error = %v; want nil", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v; want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Struct() errors = %v; want tag %q", vErrs, tt.wantTag)
		})
	}
}

func Test_userRoleValidation(t *testing.T) {
	validate := newValidator()

	nu := NewUser{
		Name:            "Aisha Kamau",
		Email:           "aisha@test.cd",
		Password:        "L3tsL34rn!",
		PasswordConfirm: "L3tsL34rn!",
		Role:            "Admin",
	}
	err := validate.Struct(&nu)
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Struct() error = %v; want validator.ValidationErrors", err)
	}
	if len(vErrs) != 1 || vErrs[0].Tag() != userRoleTag {
		t.Errorf("Struct() errors = %v; want a single %q error", vErrs, userRoleTag)
	}

	for _, role := range AllRoles {
		nu.Role = role
		if err := validate.Struct(&nu); err != nil {
			t.Errorf("Struct() with role %q error = %v; want nil", role, err)
		}
	}
}
