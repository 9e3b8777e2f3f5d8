package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/article"
	"github.com/ziadkadry99/akasha/internal/catalog"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Read today's transmission",
	Long:  `Shows the transmission of the day. The same transmission is returned all day; --shuffle tunes to a random frequency instead.`,
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().Bool("shuffle", false, "pick a random transmission")
	dailyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	shuffle, _ := cmd.Flags().GetBool("shuffle")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	e, ok := catalog.New(lib, newResponder(cfg, lib), logger).Daily(shuffle)
	if !ok {
		return fmt.Errorf("the archive holds no transmissions")
	}
	a, err := article.New(e)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, a)
	}
	fmt.Fprintf(out, "%s\n%s · %d min read\n\n", a.Title, a.FormattedDate, a.ReadMinutes)
	for _, p := range a.Paragraphs {
		fmt.Fprintf(out, "  %s\n\n", p)
	}
	return nil
}
