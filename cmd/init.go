package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize akasha configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the dataset, saved transmissions, oracle pacing and server port, and writes a .akasha.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
