package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"buylist/internal/buylist"
	"buylist/internal/config"
	"buylist/internal/logging"
	"buylist/internal/persist"
	"buylist/internal/storage"
	"buylist/internal/ui"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *storage.Store
	adapter *persist.Adapter
	list    *buylist.List
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// run executes the command line in args, writing command output to out.
func run(args []string, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "buylist",
		Short: "A shopping list for the terminal",
		Long: `buylist keeps a list of things to buy with quantities and a purchased flag.

Run without arguments to open the interactive list. The subcommands operate on
the same list for scripting; items are addressed by their 1-based position as
printed by "buylist ls".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(configPath, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.list, a.cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $BUYLIST_CONFIG or the user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newToggleCmd(a),
		newStepCmd(a, "inc", "Increase the quantity of an item", a.increment),
		newStepCmd(a, "dec", "Decrease the quantity of an item", a.decrement),
		newRenameCmd(a),
		newRemoveCmd(a),
		newResetCmd(a),
	)
	return root
}

func (a *app) open(configPath string, verbose bool) error {
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.store, err = storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.logger.Debug("store opened", zap.String("path", cfg.DBPath), zap.String("config", configPath))

	a.adapter = persist.New(a.store, cfg.StorageKey, a.logger)
	a.list = buylist.New(a.adapter, a.logger)
	if err := a.list.Bootstrap(cfg.SeedItems()); err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	return nil
}
