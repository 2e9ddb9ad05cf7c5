// Package credentials is the credential store: register and verify over the
// username → record mapping kept in slot learnify_users. It is a lookup, not
// a security mechanism; the password scheme decides how secrets are kept.
package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/logging"
	"github.com/dmitrijs2005/learnify/internal/models"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
)

var (
	ErrAlreadyExists      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
	ErrUnknownScheme      = errors.New("unknown password scheme")
)

// Store keeps the username → credential mapping in the learnify_users slot.
type Store struct {
	repo   kv.Repository
	scheme PasswordScheme
	log    logging.Logger
}

// NewStore returns a Store sealing passwords with scheme. A nil scheme
// selects PlainScheme.
func NewStore(repo kv.Repository, scheme PasswordScheme, log logging.Logger) *Store {
	if scheme == nil {
		scheme = PlainScheme{}
	}
	return &Store{repo: repo, scheme: scheme, log: log}
}

func (s *Store) decode(ctx context.Context, raw []byte) models.Credentials {
	creds, err := models.DecodeCredentials(raw)
	if err != nil {
		s.log.Warn(ctx, "malformed credentials slot, starting empty", "slot", common.SlotUsers, "error", err)
	}
	return creds
}

// Register creates a credential record for username. It fails with
// ErrAlreadyExists when the name is taken, leaving the stored record intact.
func (s *Store) Register(ctx context.Context, username, password string) error {
	if err := Validate(username, password); err != nil {
		return err
	}

	err := s.repo.Update(ctx, common.SlotUsers, func(current []byte) ([]byte, error) {
		creds := s.decode(ctx, current)
		if _, ok := creds[username]; ok {
			return nil, ErrAlreadyExists
		}

		secret, err := s.scheme.Seal(password)
		if err != nil {
			return nil, err
		}
		creds[username] = models.CredentialRecord{Password: secret}

		return creds.Encode()
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.log.Info(ctx, "user registered", "username", username)
	return nil
}

// Verify succeeds only when username exists and password matches its
// stored secret.
func (s *Store) Verify(ctx context.Context, username, password string) error {
	raw, err := s.repo.Get(ctx, common.SlotUsers)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	rec, ok := s.decode(ctx, raw)[username]
	if !ok || !s.scheme.Match(rec.Password, password) {
		return ErrInvalidCredentials
	}
	return nil
}
