package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/lookup"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show transmissions in chronological order",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().String("order", "desc", "sort order: asc or desc")
	timelineCmd.Flags().String("year", lookup.AllYears, "only show this year")
	timelineCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	order, _ := cmd.Flags().GetString("order")
	year, _ := cmd.Flags().GetString("year")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if order != "asc" && order != "desc" {
		return fmt.Errorf("--order must be asc or desc, got %q", order)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	view := lookup.Timeline(lib.Excerpts(), order == "asc", year)
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, view)
	}

	fmt.Fprintf(out, "Years: %s, %s\n\n", lookup.AllYears, strings.Join(view.Years, ", "))
	if len(view.Entries) == 0 {
		fmt.Fprintf(out, "No transmissions recorded for %s.\n", view.Year)
		return nil
	}
	for _, e := range view.Entries {
		fmt.Fprintf(out, "%-20s %s\n", e.FormattedDate, e.Source)
		fmt.Fprintf(out, "%-20s %s\n\n", "", e.Content)
	}
	return nil
}
