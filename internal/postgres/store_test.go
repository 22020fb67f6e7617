package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusvpn/mockapi/internal/medium/mediumtest"
	"github.com/nexusvpn/mockapi/pkg/types"
)

// envTestDSN names a database the tests may write to. The slots table is
// cleared by the suite.
const envTestDSN = "MOCKAPI_TEST_POSTGRES_DSN"

func TestStoreConformance(t *testing.T) {
	dsn := os.Getenv(envTestDSN)
	if dsn == "" {
		t.Skipf("%s not set", envTestDSN)
	}

	mediumtest.Run(t, func(t *testing.T) types.Medium {
		s, err := New(context.Background(), dsn)
		require.NoError(t, err)
		require.NoError(t, s.Clear(context.Background()))
		return s
	})
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrPostgresDSN)
}

func TestNewRejectsMalformedDSN(t *testing.T) {
	_, err := New(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}
