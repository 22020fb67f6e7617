package types

import "fmt"

// Server statuses.
const (
	ServerStatusOnline      = "online"
	ServerStatusOffline     = "offline"
	ServerStatusMaintenance = "maintenance"
)

// validServerStatuses is the set of recognized server status values.
var validServerStatuses = map[string]bool{
	ServerStatusOnline:      true,
	ServerStatusOffline:     true,
	ServerStatusMaintenance: true,
}

// Server describes one VPN endpoint offered to users.
type Server struct {
	Meta
	Country     string `json:"country"`      // Display name of the country (required).
	CountryCode string `json:"country_code"` // ISO 3166-1 alpha-2 code (required).
	City        string `json:"city"`         // Display name of the city (required).
	Load        int    `json:"load"`         // Utilisation percentage, 0 to 100.
	Ping        int    `json:"ping"`         // Round trip estimate in milliseconds.
	IsPremium   bool   `json:"is_premium"`   // Restricted to paid plans.
	Status      string `json:"status"`       // One of the ServerStatus constants, or empty.
}

// Validate checks required fields and value ranges.
// Returns an error wrapping ErrInvalidData on failure.
func (s Server) Validate() error {
	switch {
	case s.Country == "":
		return fmt.Errorf("%w: country is required", ErrInvalidData)
	case len(s.CountryCode) != 2:
		return fmt.Errorf("%w: country_code must be a two-letter code", ErrInvalidData)
	case s.City == "":
		return fmt.Errorf("%w: city is required", ErrInvalidData)
	case s.Load < 0 || s.Load > 100:
		return fmt.Errorf("%w: load %d out of range 0-100", ErrInvalidData, s.Load)
	case s.Ping < 0:
		return fmt.Errorf("%w: ping must not be negative", ErrInvalidData)
	case s.Status != "" && !validServerStatuses[s.Status]:
		return fmt.Errorf("%w: unknown server status %q", ErrInvalidData, s.Status)
	}
	return nil
}

// Online reports whether the server accepts connections.
func (s Server) Online() bool {
	return s.Status == ServerStatusOnline
}

// AvailableTo reports whether a user on the given plan may connect.
// Premium servers require any plan other than free.
func (s Server) AvailableTo(plan string) bool {
	if !s.IsPremium {
		return true
	}
	return plan != "" && plan != PlanFree
}
