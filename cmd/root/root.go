// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"
	"sync"

	"fjacquet/finhealth/internal/config"
	"fjacquet/finhealth/internal/container"
	"fjacquet/finhealth/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to every command
type CommonFlags struct {
	ConfigFile string
	Output     string
	Format     string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger before any subcommand runs.
	Log = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finhealth",
		Short: "A CLI tool to score the financial health of a household.",
		Long: `finhealth reads a transactions table and an accounts table and produces a
financial-health diagnostic: per-category scores, an overall grade, gaps,
risks, recommendations and a follow-up questionnaire. It also reports
spending trends and savings opportunities.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.finhealth, .finhealth and .)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (default stdout)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: json or yaml (default from config)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	})
}

// Setup loads the configuration and builds the application container.
func Setup() error {
	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	cfg.Log.Level = resolveLogLevel(cfg.Log.Level)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	appContainer = c
	Log = c.GetLogger()
	return nil
}

// resolveLogLevel applies the --log-level flag, then a plain LOG_LEVEL
// variable when no FINHEALTH_LOG_LEVEL override is set.
func resolveLogLevel(configured string) string {
	if SharedFlags.LogLevel != "" {
		return SharedFlags.LogLevel
	}
	if _, ok := os.LookupEnv(config.EnvPrefix + "_LOG_LEVEL"); !ok {
		if level := config.GetEnv("LOG_LEVEL", ""); level != "" {
			return level
		}
	}
	return configured
}

// GetContainer returns the container built by Setup, or nil before it ran.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the application container.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}
