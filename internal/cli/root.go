// Package cli wires the cobra commands of the formstep binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstep/internal/bootstrap"
	"github.com/goliatone/go-formstep/internal/config"
)

type globalOptions struct {
	envFile    string
	store      string
	storeDir   string
	sqlitePath string
	redisAddr  string
	key        string
	layout     string
	logLevel   string
	logFormat  string
	logFile    string
}

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "formstep",
		Short: "Fill in a multi-step form from the terminal or a browser",
		Long: `formstep walks through a three-step form (personal details, contact
details, review), validating each step and saving progress after every step so
an interrupted session can be resumed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read before the environment")
	flags.StringVar(&opts.store, "store", "", "storage driver: memory, file, sqlite or redis (FORMSTEP_STORE)")
	flags.StringVar(&opts.storeDir, "store-dir", "", "directory for the file store (FORMSTEP_STORE_DIR)")
	flags.StringVar(&opts.sqlitePath, "sqlite-path", "", "database path for the sqlite store (FORMSTEP_SQLITE_PATH)")
	flags.StringVar(&opts.redisAddr, "redis-addr", "", "address for the redis store (FORMSTEP_REDIS_ADDR)")
	flags.StringVar(&opts.key, "key", "", "storage key of the record (FORMSTEP_STORAGE_KEY)")
	flags.StringVar(&opts.layout, "layout", "", "YAML or JSON layout overrides (FORMSTEP_LAYOUT_FILE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (FORMSTEP_LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "console or json (FORMSTEP_LOG_FORMAT)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to a rotated file (FORMSTEP_LOG_FILE)")

	rootCmd.AddCommand(newFillCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newResetCmd(opts))

	return rootCmd
}

// load reads the configuration and applies flags the user set explicitly.
func (o *globalOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	override := func(name string, target *string, value string) {
		if flags.Changed(name) {
			*target = value
		}
	}
	override("store", &cfg.Store, o.store)
	override("store-dir", &cfg.StoreDir, o.storeDir)
	override("sqlite-path", &cfg.SQLitePath, o.sqlitePath)
	override("redis-addr", &cfg.RedisAddr, o.redisAddr)
	override("key", &cfg.StorageKey, o.key)
	override("layout", &cfg.LayoutFile, o.layout)
	override("log-level", &cfg.LogLevel, o.logLevel)
	override("log-format", &cfg.LogFormat, o.logFormat)
	override("log-file", &cfg.LogFile, o.logFile)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o *globalOptions) runtime(ctx context.Context, cmd *cobra.Command) (*bootstrap.Runtime, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}
