// Package session keeps the session pointer: the name of the logged in user,
// persisted in slot learnify_current_user so it survives restarts.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
)

type Store struct {
	repo kv.Repository
}

func NewStore(repo kv.Repository) *Store {
	return &Store{repo: repo}
}

// Current returns the logged in username or common.GuestUser.
func (s *Store) Current(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.SlotCurrentUser)
	if err != nil {
		return common.GuestUser, fmt.Errorf("failed to read session: %w", err)
	}
	if len(v) == 0 {
		return common.GuestUser, nil
	}
	return string(v), nil
}

// Set points the session at username. An empty name is ignored.
func (s *Store) Set(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	if err := s.repo.Set(ctx, common.SlotCurrentUser, []byte(username)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear logs out; the session falls back to the guest identity.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.SlotCurrentUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
