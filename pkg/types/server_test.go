package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerValidate(t *testing.T) {
	valid := Server{
		Country:     "Italy",
		CountryCode: "IT",
		City:        "Rome",
		Load:        10,
		Ping:        20,
		Status:      ServerStatusOnline,
	}

	tests := []struct {
		name    string
		mutate  func(s *Server)
		wantErr bool
	}{
		{name: "valid server", mutate: func(s *Server) {}},
		{name: "empty status accepted", mutate: func(s *Server) { s.Status = "" }},
		{name: "missing country", mutate: func(s *Server) { s.Country = "" }, wantErr: true},
		{name: "three letter code", mutate: func(s *Server) { s.CountryCode = "ITA" }, wantErr: true},
		{name: "missing city", mutate: func(s *Server) { s.City = "" }, wantErr: true},
		{name: "load above 100", mutate: func(s *Server) { s.Load = 101 }, wantErr: true},
		{name: "negative load", mutate: func(s *Server) { s.Load = -1 }, wantErr: true},
		{name: "negative ping", mutate: func(s *Server) { s.Ping = -5 }, wantErr: true},
		{name: "unknown status", mutate: func(s *Server) { s.Status = "sleeping" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerAvailableTo(t *testing.T) {
	free := Server{IsPremium: false}
	premium := Server{IsPremium: true}

	assert.True(t, free.AvailableTo(PlanFree))
	assert.True(t, free.AvailableTo(""))
	assert.False(t, premium.AvailableTo(PlanFree))
	assert.False(t, premium.AvailableTo(""))
	assert.True(t, premium.AvailableTo(PlanBasic))
	assert.True(t, premium.AvailableTo(PlanUltimate))
}

func TestServerOnline(t *testing.T) {
	assert.True(t, Server{Status: ServerStatusOnline}.Online())
	assert.False(t, Server{Status: ServerStatusMaintenance}.Online())
}
