package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "localstorage", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "file with empty DataDir is valid at config level",
			config:  Config{Backend: BackendFile, DataDir: ""},
			wantErr: nil,
		},
		{
			name:    "memory needs nothing",
			config:  Config{Backend: BackendMemory},
			wantErr: nil,
		},
		{
			name:    "redis without address",
			config:  Config{Backend: BackendRedis},
			wantErr: ErrRedisAddr,
		},
		{
			name:    "redis with address",
			config:  Config{Backend: BackendRedis, Redis: RedisConfig{Addr: "localhost:6379"}},
			wantErr: nil,
		},
		{
			name:    "postgres without DSN",
			config:  Config{Backend: BackendPostgres},
			wantErr: ErrPostgresDSN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListOptionsNormalize(t *testing.T) {
	got := ListOptions{}.Normalize()
	if got.Sort != DefaultSort || got.Limit != DefaultLimit {
		t.Fatalf("zero options normalized to %+v", got)
	}

	got = ListOptions{Sort: "ping", Limit: -1}.Normalize()
	if got.Sort != "ping" || got.Limit != -1 {
		t.Fatalf("explicit options changed to %+v", got)
	}
}
