package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nexusvpn/mockapi/internal/paths"
	"github.com/nexusvpn/mockapi/pkg/types"
)

// initResult is printed by the init command.
type initResult struct {
	ConfigFile string `json:"config_file"`
	Backend    string `json:"backend"`
	DataDir    string `json:"data_dir"`
	Servers    int    `json:"servers"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config and seed the storage backend",
		Long: "Create the configuration directory with a default config.yaml when none\n" +
			"exists, then open the configured backend so the built-in servers are seeded.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return systemErr("resolving config dir: %w", err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return systemErr("creating config dir: %w", err)
			}

			configFile := paths.ConfigFile(configDir)
			backend := a.flags.backend
			if backend == "" {
				backend = defaultBackend
			}
			if err := writeConfigIfMissing(configFile, types.Config{Backend: backend, DataDir: a.flags.dataDir}); err != nil {
				return systemErr("writing config: %w", err)
			}

			client, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			servers, err := client.Collection(cmd.Context(), types.ServerCollection)
			if err != nil {
				return err
			}
			return printJSON(cmd, initResult{
				ConfigFile: configFile,
				Backend:    a.cfg.Backend,
				DataDir:    a.cfg.DataDir,
				Servers:    servers.Len(),
			})
		},
	}
}

// writeConfigIfMissing writes cfg as YAML to path unless the file exists.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
