package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ziadkadry99/akasha/internal/config"
	"github.com/ziadkadry99/akasha/internal/logging"
)

var (
	cfgFile string
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "akasha",
	Short: "Browse, search and consult the akashic transmission archive",
	Long: `Akasha is a browser for an archive of dated channeled transmissions
grouped into spheres, with a civilization directory, cross-cutting topics,
a timeline, saved transmissions and a keyword oracle. It runs as a CLI,
an HTTP API with a websocket oracle, or an MCP server for AI agents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		level := defaultLogLevel
		if cmd.Name() != initCmd.Name() && cmd.Name() != versionCmd.Name() {
			level = configuredLogLevel(cfgFile)
		}

		l, err := logging.New(level, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

const defaultLogLevel = "info"

// configuredLogLevel reads log_level from the config at path. A missing
// file or an unknown level falls back to info so that loadConfig can
// report the problem itself.
func configuredLogLevel(path string) string {
	cfg, err := config.Load(path)
	if err != nil {
		return defaultLogLevel
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return defaultLogLevel
	}
	return cfg.LogLevel
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
