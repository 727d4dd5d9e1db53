// Package cli implements the catalog command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/internal/router"
	"github.com/mesh-intelligence/catalog/pkg/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	baseURL   string
	verbose   bool
}

// app carries the state shared by the commands of one invocation.
type app struct {
	flags  rootFlags
	config *viper.Viper
	logger *zap.Logger

	// ownLogger is set when the logger was built from configuration and
	// must be synced after the run.
	ownLogger bool
}

// NewRootCmd creates the top-level "catalog" command with every subcommand
// registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Manage a product catalog",
		Long:          "Catalog manages categories, product types, attributes and products\nstored in a local data directory.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLogger {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "base URL of generated links (default: from config.yaml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newCategoryCmd(a),
		newProductTypeCmd(a),
		newAttributeCmd(a),
		newProductCmd(a),
		newCleanCmd(a),
	)
	return root
}

// Execute runs the root command and returns the process exit code. Errors
// are written to stderr as JSON.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		writeError(os.Stderr, err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if a.config, err = loadConfig(configDir); err != nil {
		return err
	}
	if a.logger != nil {
		return nil
	}

	zcfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(a.config.GetString(cfgKeyLogLevel))
	if err != nil {
		return usageError{fmt.Errorf("config %s: %w", cfgKeyLogLevel, err)}
	}
	zcfg.Level = level
	if a.flags.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if a.logger, err = zcfg.Build(); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.ownLogger = true
	return nil
}

// attach opens the catalog in the resolved data directory.
func (a *app) attach() (types.Catalog, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{fmt.Errorf("config %s %q: %w", cfgKeyBackend, cfg.Backend, err)}
	}

	c := sqlite.NewBackend(a.logger)
	if err := c.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach catalog: %w", err)
	}
	a.logger.Debug("attached catalog", zap.String("data_dir", dataDir))
	return c, nil
}

// withCatalog attaches the catalog, runs fn and detaches.
func (a *app) withCatalog(fn func(types.Catalog) error) (err error) {
	c, err := a.attach()
	if err != nil {
		return err
	}
	defer func() {
		if derr := c.Detach(); err == nil && derr != nil {
			err = fmt.Errorf("detach catalog: %w", derr)
		}
	}()
	return fn(c)
}

// withService runs fn with a Service over the attached catalog.
func (a *app) withService(fn func(*catalog.Service) error) error {
	return a.withCatalog(func(c types.Catalog) error {
		baseURL := a.flags.baseURL
		if baseURL == "" {
			baseURL = a.config.GetString(cfgKeyBaseURL)
		}
		urls, err := router.New(baseURL, router.DefaultRoutes)
		if err != nil {
			return usageError{err}
		}
		svc, err := catalog.NewService(c, urls, catalog.Config{
			LimitMax:     a.config.GetInt(cfgKeyLimitMax),
			LimitDefault: a.config.GetInt(cfgKeyLimitDefault),
		}, a.logger)
		if err != nil {
			return err
		}
		return fn(svc)
	})
}
