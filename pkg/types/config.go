package types

import "errors"

// Config holds medium selection and parameters for mockapi.Open.
type Config struct {
	Backend  string         `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir  string         `json:"data_dir" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	Redis    RedisConfig    `json:"redis" yaml:"redis,omitempty" mapstructure:"redis"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres,omitempty" mapstructure:"postgres"`
}

// RedisConfig addresses the Redis server backing the redis medium.
type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr,omitempty" mapstructure:"addr"`
	Username  string `json:"username" yaml:"username,omitempty" mapstructure:"username"`
	Password  string `json:"password" yaml:"password,omitempty" mapstructure:"password"`
	DB        int    `json:"db" yaml:"db,omitempty" mapstructure:"db"`
	Namespace string `json:"namespace" yaml:"namespace,omitempty" mapstructure:"namespace"`
}

// PostgresConfig addresses the database backing the postgres medium.
type PostgresConfig struct {
	DSN string `json:"dsn" yaml:"dsn,omitempty" mapstructure:"dsn"`
}

// Supported backend names.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultRedisNamespace prefixes every key written by the redis medium.
const DefaultRedisNamespace = "nexus"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrRedisAddr      = errors.New("redis backend requires an address")
	ErrPostgresDSN    = errors.New("postgres backend requires a DSN")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory:   true,
	BackendFile:     true,
	BackendSQLite:   true,
	BackendRedis:    true,
	BackendPostgres: true,
}

// KnownBackends returns the accepted backend names in display order.
func KnownBackends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendPostgres}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty DataDir is valid; file and sqlite
// media fall back to the working directory.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.Backend {
	case BackendRedis:
		if c.Redis.Addr == "" {
			return ErrRedisAddr
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return ErrPostgresDSN
		}
	}
	return nil
}
