package credentials

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type credentialsInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Validate rejects a username or password that is empty after trimming
// surrounding whitespace.
func Validate(username, password string) error {
	in := credentialsInput{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if err := validate.Struct(in); err != nil {
		return ErrEmptyCredentials
	}
	return nil
}
