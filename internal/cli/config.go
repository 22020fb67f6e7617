package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nexusvpn/mockapi/internal/paths"
	"github.com/nexusvpn/mockapi/pkg/types"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "MOCKAPI"

	// defaultBackend keeps one JSON file per slot in the data directory.
	defaultBackend = types.BackendFile
)

// Config keys. Each is bound to MOCKAPI_<KEY> with dots as underscores.
// data_dir is resolved separately through paths.ResolveDataDir.
var envKeys = []string{
	"backend",
	"redis.addr",
	"redis.username",
	"redis.password",
	"redis.db",
	"redis.namespace",
	"postgres.dsn",
}

// loadConfig resolves the configuration directory, loads its .env file and
// config.yaml (both optional) and applies environment and flag overrides.
func (a *app) loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return types.Config{}, systemErr("resolving config dir: %w", err)
	}

	if err := loadEnvFile(paths.EnvFile(configDir)); err != nil {
		return types.Config{}, err
	}

	v, err := readConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}

	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, v.GetString("data_dir"))
	if err != nil {
		return types.Config{}, systemErr("resolving data dir: %w", err)
	}

	a.logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir))
	return cfg, nil
}

// readConfig reads config.yaml from configDir with viper. A missing file is
// not an error.
func readConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("backend", defaultBackend)
	v.SetDefault("redis.namespace", types.DefaultRedisNamespace)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)

	for _, key := range envKeys {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}

// loadEnvFile exports the variables of a .env file that are not already
// set in the environment.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
