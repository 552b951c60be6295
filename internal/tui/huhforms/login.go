package huhforms

import (
	"errors"
	"strings"

	"charm.land/huh/v2"
)

// LoginFormValues is bound to the sign-in form.
type LoginFormValues struct {
	Email    string
	Password string
}

// CreateLoginForm creates the sign-in form shown when no session exists
func CreateLoginForm(v *LoginFormValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title("Design Partners").
			Description("Sign in to continue"),

		huh.NewInput().
			Key("email").
			Title("Email").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("email is required")
				}
				return nil
			}).
			Value(&v.Email),

		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password is required")
				}
				return nil
			}).
			Value(&v.Password),
	)).WithKeyMap(CreateKeyMap(""))
}
