package session

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/storage/kv"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	kv.Repository
	err error
}

func (f failingRepo) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingRepo) Set(context.Context, string, []byte) error   { return f.err }
func (f failingRepo) Delete(context.Context, string) error        { return f.err }

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	s := NewStore(repo)

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, common.GuestUser, cur)

	require.NoError(t, s.Set(ctx, "bob"))
	cur, err = s.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "bob", cur)

	raw, _ := repo.Get(ctx, common.SlotCurrentUser)
	require.Equal(t, "bob", string(raw), "slot holds a plain string")

	// a new store over the same storage sees the pointer
	cur, err = NewStore(repo).Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "bob", cur)

	require.NoError(t, s.Clear(ctx))
	cur, err = s.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, common.GuestUser, cur)
}

func TestSession_SetEmptyIsIgnored(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemoryRepository())

	require.NoError(t, s.Set(ctx, "alice"))
	require.NoError(t, s.Set(ctx, ""))

	cur, _ := s.Current(ctx)
	require.Equal(t, "alice", cur)
}

func TestSession_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	s := NewStore(failingRepo{err: boom})

	cur, err := s.Current(ctx)
	require.ErrorIs(t, err, boom)
	require.Equal(t, common.GuestUser, cur)

	require.ErrorIs(t, s.Set(ctx, "bob"), boom)
	require.ErrorIs(t, s.Clear(ctx), boom)
}
