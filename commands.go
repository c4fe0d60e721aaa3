package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"quickfind/internal/app"
	"quickfind/internal/config"
	"quickfind/internal/eventbus"
)

// cliFlags holds the values of every flag; zero values mean "not set"
type cliFlags struct {
	configPath string

	endpoint string
	query    string
	link     string
	debounce time.Duration

	addr        string
	minDelay    int
	maxDelay    int
	databaseURL string

	force bool
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	root := &cobra.Command{
		Use:   "quickfind",
		Short: "Search-as-you-type product finder for the terminal",
		Long: `quickfind searches a product catalog while you type. Only the newest
query is ever shown, however the responses arrive.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, f)
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/quickfind/config.toml)")
	root.Flags().StringVar(&f.endpoint, "endpoint", "", "search endpoint URL")
	root.Flags().StringVarP(&f.query, "query", "q", "", "initial query")
	root.Flags().StringVar(&f.link, "link", "", "shareable link to restore, e.g. http://localhost:3000/?q=tv")
	root.Flags().DurationVar(&f.debounce, "debounce", 0, "quiet period before searching (e.g. 300ms)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the search endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}
	serve.Flags().StringVar(&f.addr, "addr", "", "listen address")
	serve.Flags().IntVar(&f.minDelay, "min-delay", -1, "minimum injected delay in ms")
	serve.Flags().IntVar(&f.maxDelay, "max-delay", -1, "maximum injected delay in ms")
	serve.Flags().StringVar(&f.databaseURL, "database-url", "", "Postgres DSN; empty serves the built-in catalog")

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cfgShow := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, nil)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cfgInit := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigServiceAt(f.configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !f.force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svc.Path())
			return nil
		},
	}
	cfgInit.Flags().BoolVar(&f.force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(cfgShow, cfgInit)

	root.AddCommand(serve, cfgCmd)
	return root
}

// loadConfig loads the config file and applies flag overrides
func loadConfig(f *cliFlags, bus eventbus.EventBus) (*config.Config, error) {
	svc := config.NewConfigServiceWithBus(f.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	if f.endpoint != "" {
		cfg.Client.Endpoint = f.endpoint
	}
	if f.debounce > 0 {
		cfg.Client.DebounceMs = int(f.debounce / time.Millisecond)
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.minDelay >= 0 {
		cfg.Server.MinDelayMs = f.minDelay
	}
	if f.maxDelay >= 0 {
		cfg.Server.MaxDelayMs = f.maxDelay
	}
	if f.databaseURL != "" {
		cfg.Server.DatabaseURL = f.databaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runWidget(cmd *cobra.Command, f *cliFlags) error {
	bus := eventbus.New()
	defer bus.Close()
	app.LogEvents(bus)

	cfg, err := loadConfig(f, bus)
	if err != nil {
		return err
	}

	// The terminal belongs to Bubble Tea, so logs go to a file
	if cfg.UI.LogFile != "" {
		logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	ctx, cancel := signalContext()
	defer cancel()

	return app.RunWidget(ctx, cfg, bus, app.WidgetOptions{Query: f.query, Link: f.link}, cmd.OutOrStdout())
}

func runServe(cmd *cobra.Command, f *cliFlags) error {
	cfg, err := loadConfig(f, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	err = app.RunServer(ctx, cfg.Server, app.NewLogger(cmd.OutOrStdout()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
