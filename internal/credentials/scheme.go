package credentials

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme turns a password into the stored secret and checks a
// password against it.
type PasswordScheme interface {
	Seal(password string) (string, error)
	Match(stored, password string) bool
}

// Scheme names accepted in configuration.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
	SchemeArgon2 = "argon2"
)

// PlainScheme stores the password as is and compares exactly. Records it
// writes are readable by the browser version.
type PlainScheme struct{}

func (PlainScheme) Seal(password string) (string, error) {
	return password, nil
}

func (PlainScheme) Match(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// BcryptScheme stores a bcrypt hash. Cost 0 means bcrypt.DefaultCost.
type BcryptScheme struct {
	Cost int
}

func (b BcryptScheme) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptScheme) Match(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (PasswordScheme, error) {
	switch name {
	case "", SchemePlain:
		return PlainScheme{}, nil
	case SchemeBcrypt:
		return BcryptScheme{}, nil
	case SchemeArgon2:
		return Argon2Scheme{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}
