package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/nexusvpn/mockapi/internal/medium"
	"github.com/nexusvpn/mockapi/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errOffline = errors.New("offline")

type brokenMedium struct {
	*medium.Memory
}

func (brokenMedium) Set(context.Context, string, []byte) error { return errOffline }
func (brokenMedium) Remove(context.Context, string) error { return errOffline }

func openStore(t *testing.T, m types.Medium) *Store {
	t.Helper()
	s, err := Open(context.Background(), m, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return s
}

func TestAnonymousByDefault(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, medium.NewMemory())

	assert.False(t, s.IsAuthenticated(ctx))
	_, err := s.Me(ctx)
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	_, ok := s.Record(ctx)
	assert.False(t, ok)
}

func TestLoginYieldsDemoUser(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	s := openStore(t, m)

	dest, err := s.RedirectToLogin(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/", dest)
	assert.True(t, s.IsAuthenticated(ctx))

	me, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DemoUser, *me)

	raw, ok, err := m.Get(ctx, "mock_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"demo-user-123","email":"demo@nexusvpn.com","full_name":"Demo User","role":"user"}`, string(raw))

	dest, err = s.RedirectToLogin(ctx, "/pricing")
	require.NoError(t, err)
	assert.Equal(t, "/pricing", dest)
}

func TestLoginOverwritesProfile(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, medium.NewMemory())

	_, err := s.RedirectToLogin(ctx, "")
	require.NoError(t, err)
	_, err = s.UpdateMe(ctx, types.Record{"full_name": "Ada"})
	require.NoError(t, err)

	_, err = s.RedirectToLogin(ctx, "")
	require.NoError(t, err)
	me, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", me.FullName)
}

func TestUpdateMeMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	s := openStore(t, m)
	_, err := s.RedirectToLogin(ctx, "")
	require.NoError(t, err)

	me, err := s.UpdateMe(ctx, types.Record{"full_name": "Ada Lovelace", "theme": "dark"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.FullName)
	assert.Equal(t, types.DemoUser.Email, me.Email)

	reopened := openStore(t, m)
	me, err = reopened.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.FullName)
	rec, ok := reopened.Record(ctx)
	require.True(t, ok)
	assert.Equal(t, "dark", rec["theme"])
}

func TestUpdateMeWithoutSessionCreatesOne(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, medium.NewMemory())

	me, err := s.UpdateMe(ctx, types.Record{"email": "guest@example.com"})
	require.NoError(t, err)
	assert.Equal(t, &types.User{Email: "guest@example.com"}, me)
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestUpdateMeRejectsUndecodableFields(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, medium.NewMemory())
	_, err := s.RedirectToLogin(ctx, "")
	require.NoError(t, err)

	_, err = s.UpdateMe(ctx, types.Record{"full_name": 42})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	me, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", me.FullName)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	s := openStore(t, m)
	_, err := s.RedirectToLogin(ctx, "")
	require.NoError(t, err)

	dest, err := s.Logout(ctx, "/goodbye")
	require.NoError(t, err)
	assert.Equal(t, "/goodbye", dest)
	assert.False(t, s.IsAuthenticated(ctx))

	_, ok, err := m.Get(ctx, "mock_user")
	require.NoError(t, err)
	assert.False(t, ok)

	dest, err = s.Logout(ctx, "")
	require.NoError(t, err, "logging out twice is a no-op")
	assert.Equal(t, "/", dest)
}

func TestLogoutRemovesNullSlot(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	require.NoError(t, m.Set(ctx, "mock_user", []byte(`null`)))
	s := openStore(t, m)
	require.False(t, s.IsAuthenticated(ctx))

	dest, err := s.Logout(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/", dest)

	_, ok, err := m.Get(ctx, "mock_user")
	require.NoError(t, err)
	assert.False(t, ok, "logout clears the slot even when anonymous")
}

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()
	mem := medium.NewMemory()
	require.NoError(t, mem.Set(ctx, "mock_user", []byte(`{"id":"u1","email":"a@b.c"}`)))
	s := openStore(t, brokenMedium{mem})

	_, err := s.RedirectToLogin(ctx, "")
	assert.ErrorIs(t, err, types.ErrStorage)
	_, err = s.UpdateMe(ctx, types.Record{"full_name": "X"})
	assert.ErrorIs(t, err, types.ErrStorage)
	_, err = s.Logout(ctx, "")
	assert.ErrorIs(t, err, types.ErrStorage)
	assert.ErrorIs(t, err, errOffline)

	me, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, &types.User{ID: "u1", Email: "a@b.c"}, me)
}

func TestOpenRejectsCorruptSession(t *testing.T) {
	ctx := context.Background()
	m := medium.NewMemory()
	require.NoError(t, m.Set(ctx, "mock_user", []byte(`[1,2,3]`)))

	_, err := Open(ctx, m)
	assert.ErrorIs(t, err, types.ErrCorrupt)
}

func TestStoreSatisfiesSessionStore(t *testing.T) {
	var _ types.SessionStore = openStore(t, medium.NewMemory())
}
