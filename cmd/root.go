package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/statfetch/bodyshape-cli/internal/config"
	"github.com/statfetch/bodyshape-cli/internal/logging"
)

var (
	// Global flags (overrides applied on top of config/viper)
	cfgFile     string
	debug       bool
	flagMinAge  int
	flagMaxAge  int
	flagSource  string
	flagTimeout int

	// Loaded configuration and process logger
	cfg    *cfgpkg.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bodyshape",
	Short: "Fetch and clean the C&SD adult body-shape table",
	Long: `bodyshape downloads a published body-shape aggregate table (age band × sex),
locates the real CSV payload inside whatever the endpoint returns, and
normalizes it into the canonical AgeGroup, Sex, BMI, BMI_category schema.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.bodyshape/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagMinAge, "min-age", 0, "lower bound of the kept age range (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxAge, "max-age", 0, "upper bound of the kept age range (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "resource locator to fetch (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "http-timeout", 0, "HTTP timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here: commands that need config fail with a clear message.
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("min-age") {
		cfg.MinAge = flagMinAge
	}
	if f.Changed("max-age") {
		cfg.MaxAge = flagMaxAge
	}
	if f.Changed("source") && flagSource != "" {
		cfg.SourceRef = flagSource
	}
	if f.Changed("http-timeout") && flagTimeout > 0 {
		cfg.HTTPTimeoutSec = flagTimeout
	}

	l, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
		l = zap.NewNop()
	}
	logger = l
}

// requireConfig guards commands that cannot run without loaded configuration.
func requireConfig() (*cfgpkg.Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded; check --config or ~/.bodyshape/config.yaml")
	}
	return cfg, nil
}
