package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexusvpn/mockapi/pkg/types"
)

func TestMockServers(t *testing.T) {
	servers := MockServers()
	assert.Len(t, servers, 15)

	premium := 0
	for i, s := range servers {
		assert.Equal(t, i+1, s.ID, "ids run 1 through 15 in order")
		assert.NoError(t, s.Validate(), "server %d", s.ID)
		assert.True(t, s.Online(), "server %d", s.ID)
		if s.IsPremium {
			premium++
		}
	}
	assert.Equal(t, 5, premium)

	assert.Equal(t, types.Server{
		Meta:        types.Meta{ID: 11},
		Country:     "Япония",
		CountryCode: "JP",
		City:        "Токио",
		Load:        45,
		Ping:        180,
		Status:      types.ServerStatusOnline,
	}, servers[10])
}

func TestMockServersReturnsFreshSlice(t *testing.T) {
	a := MockServers()
	a[0].City = "changed"
	assert.Equal(t, "Нью-Йорк", MockServers()[0].City)
}
