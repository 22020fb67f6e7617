package mockapi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/internal/medium"
	"github.com/nexusvpn/mockapi/internal/postgres"
	"github.com/nexusvpn/mockapi/internal/rediskv"
	"github.com/nexusvpn/mockapi/internal/sqlite"
	"github.com/nexusvpn/mockapi/pkg/types"
)

// OpenMedium creates the medium selected by cfg.Backend. The caller owns
// the result and must Close it.
//
// Example:
//
//	m, err := mockapi.OpenMedium(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".nexus",
//	}, logger)
//	defer m.Close()
func OpenMedium(ctx context.Context, cfg types.Config, logger *zap.Logger) (types.Medium, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		m   types.Medium
		err error
	)
	switch cfg.Backend {
	case types.BackendMemory:
		m = medium.NewMemory()
	case types.BackendFile:
		m, err = medium.NewDir(cfg.DataDir)
	case types.BackendSQLite:
		m, err = sqlite.Open(ctx, cfg.DataDir)
	case types.BackendRedis:
		m, err = rediskv.New(ctx, cfg.Redis, logger)
	case types.BackendPostgres:
		m, err = postgres.New(ctx, cfg.Postgres.DSN)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s medium: %w", cfg.Backend, err)
	}
	logger.Debug("medium opened", zap.String("backend", cfg.Backend), zap.String("data_dir", cfg.DataDir))
	return m, nil
}
