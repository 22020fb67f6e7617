// Package cli implements the mockapi command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nexusvpn/mockapi/pkg/mockapi"
	"github.com/nexusvpn/mockapi/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	verbose   bool
}

// app carries state shared by one command invocation.
type app struct {
	flags  rootFlags
	logger *zap.Logger
	cfg    types.Config
	client *mockapi.Client
}

// sysError marks a failure of the environment rather than of the request.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemErr(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// NewRootCmd creates the top-level "mockapi" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{logger: zap.NewNop()})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mockapi",
		Short: "Nexus VPN mock backend",
		Long: "mockapi inspects and edits the mock data behind the Nexus VPN demo:\n" +
			"entity collections, the demo session, purchases and support tickets.\n\n" +
			"Login is a test double: it always signs in the fixed demo user.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for file and sqlite backends")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: memory, file, sqlite, redis, postgres")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProfileCmd(a),
		newPurchaseCmd(a),
		newPlanCmd(a),
		newTicketCmd(a),
		newInviteCmd(a),
		newResetCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{logger: zap.NewNop()}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

// exitCode maps an error to an exit code. Storage and environment failures
// are system errors; everything else is the caller's mistake.
func exitCode(err error) int {
	var se *sysError
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &se),
		errors.Is(err, types.ErrStorage),
		errors.Is(err, types.ErrCorrupt),
		errors.Is(err, types.ErrMediumClosed):
		return exitSysError
	default:
		return exitUserError
	}
}

func (a *app) initLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.flags.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return systemErr("initializing logger: %w", err)
	}
	a.logger = logger
	return nil
}

// open loads configuration and opens the client once per invocation.
func (a *app) open(ctx context.Context) (*mockapi.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := mockapi.Open(ctx, cfg, mockapi.WithLogger(a.logger))
	if err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) ||
			errors.Is(err, types.ErrRedisAddr) || errors.Is(err, types.ErrPostgresDSN) {
			return nil, err
		}
		return nil, &sysError{err: err}
	}
	a.cfg = cfg
	a.client = client
	return client, nil
}

func (a *app) close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.Warn("closing client", zap.Error(err))
		}
		a.client = nil
	}
	_ = a.logger.Sync()
}
