package medium

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusvpn/mockapi/internal/medium/mediumtest"
	"github.com/nexusvpn/mockapi/pkg/types"
)

func TestMemoryConformance(t *testing.T) {
	mediumtest.Run(t, func(t *testing.T) types.Medium {
		return NewMemory()
	})
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte(`[1]`)
	require.NoError(t, m.Set(ctx, "k", buf))
	buf[1] = '2'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(got))

	got[1] = '3'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, `[1]`, string(again))
	assert.Equal(t, 1, m.Len())
}
