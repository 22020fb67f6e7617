// Package mediumtest holds the behavioural checks every types.Medium
// implementation must pass. Each backend's tests call Run with a factory.
package mediumtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusvpn/mockapi/pkg/types"
)

// Factory returns a fresh, empty medium. The suite closes it.
type Factory func(t *testing.T) types.Medium

// Run executes the conformance suite against media produced by newMedium.
func Run(t *testing.T, newMedium Factory) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent key", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		v, ok, err := m.Get(ctx, "mock_Server")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		require.NoError(t, m.Set(ctx, "mock_Server", []byte(`[{"id":1}]`)))
		v, ok, err := m.Get(ctx, "mock_Server")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"id":1}]`, string(v))
	})

	t.Run("set replaces value", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		require.NoError(t, m.Set(ctx, "mock_user", []byte(`{"email":"a"}`)))
		require.NoError(t, m.Set(ctx, "mock_user", []byte(`{"email":"b"}`)))
		v, ok, err := m.Get(ctx, "mock_user")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"email":"b"}`, string(v))
	})

	t.Run("keys are independent", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		require.NoError(t, m.Set(ctx, "mock_Payment", []byte(`[]`)))
		require.NoError(t, m.Set(ctx, "mock_Subscription", []byte(`[{"id":2}]`)))
		require.NoError(t, m.Remove(ctx, "mock_Payment"))

		_, ok, err := m.Get(ctx, "mock_Payment")
		require.NoError(t, err)
		assert.False(t, ok)
		v, ok, err := m.Get(ctx, "mock_Subscription")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `[{"id":2}]`, string(v))
	})

	t.Run("remove absent key succeeds", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		assert.NoError(t, m.Remove(ctx, "mock_user"))
		assert.NoError(t, m.Remove(ctx, "mock_user"))
	})

	t.Run("clear drops every key", func(t *testing.T) {
		m := newMedium(t)
		defer m.Close()

		for _, name := range types.StandardCollectionNames {
			require.NoError(t, m.Set(ctx, types.CollectionKey(name), []byte(`[]`)))
		}
		require.NoError(t, m.Set(ctx, types.SessionKey, []byte(`{}`)))
		require.NoError(t, m.Clear(ctx))

		for _, name := range types.StandardCollectionNames {
			_, ok, err := m.Get(ctx, types.CollectionKey(name))
			require.NoError(t, err)
			assert.False(t, ok, name)
		}
		_, ok, err := m.Get(ctx, types.SessionKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("closed medium rejects operations", func(t *testing.T) {
		m := newMedium(t)
		require.NoError(t, m.Close())
		require.NoError(t, m.Close(), "Close must be idempotent")

		_, _, err := m.Get(ctx, "mock_user")
		assert.ErrorIs(t, err, types.ErrMediumClosed)
		assert.ErrorIs(t, m.Set(ctx, "mock_user", []byte(`{}`)), types.ErrMediumClosed)
		assert.ErrorIs(t, m.Remove(ctx, "mock_user"), types.ErrMediumClosed)
		assert.ErrorIs(t, m.Clear(ctx), types.ErrMediumClosed)
	})
}
