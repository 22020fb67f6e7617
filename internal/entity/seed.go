package entity

import "github.com/nexusvpn/mockapi/pkg/types"

// mockServer describes one built-in server fixture.
type mockServer struct {
	country     string
	countryCode string
	city        string
	load        int
	ping        int
	premium     bool
}

// mockServers is the built-in server catalogue seeded into an empty Server
// collection, in id order.
var mockServers = []mockServer{
	{"США", "US", "Нью-Йорк", 35, 120, false},
	{"США", "US", "Лос-Анджелес", 42, 145, false},
	{"США", "US", "Майами", 28, 135, true},
	{"Германия", "DE", "Франкфурт", 55, 45, false},
	{"Германия", "DE", "Берлин", 38, 48, true},
	{"Нидерланды", "NL", "Амстердам", 62, 42, false},
	{"Великобритания", "GB", "Лондон", 48, 55, false},
	{"Великобритания", "GB", "Манчестер", 25, 58, true},
	{"Франция", "FR", "Париж", 51, 50, false},
	{"Швейцария", "CH", "Цюрих", 32, 40, true},
	{"Япония", "JP", "Токио", 45, 180, false},
	{"Япония", "JP", "Осака", 28, 175, true},
	{"Сингапур", "SG", "Сингапур", 58, 160, false},
	{"Австралия", "AU", "Сидней", 35, 220, false},
	{"Канада", "CA", "Торонто", 40, 130, false},
}

// MockServers returns the built-in server catalogue with ids 1 through 15.
// Timestamps are left empty; Open stamps them when seeding.
func MockServers() []types.Server {
	servers := make([]types.Server, len(mockServers))
	for i, m := range mockServers {
		servers[i] = types.Server{
			Meta:        types.Meta{ID: i + 1},
			Country:     m.country,
			CountryCode: m.countryCode,
			City:        m.city,
			Load:        m.load,
			Ping:        m.ping,
			IsPremium:   m.premium,
			Status:      types.ServerStatusOnline,
		}
	}
	return servers
}

