package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/catalog"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [topic-id]",
	Short: "Browse cross-cutting topics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTopics,
}

func init() {
	topicsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		topics := lib.Topics()
		if jsonOutput {
			return printJSON(out, topics)
		}
		for _, t := range topics {
			fmt.Fprintf(out, "%-18s %s\n", t.ID, t.Name)
		}
		return nil
	}

	view, ok := catalog.New(lib, newResponder(cfg, lib), logger).Topic(args[0])
	if !ok {
		return fmt.Errorf("unknown topic %q", args[0])
	}
	if jsonOutput {
		return printJSON(out, view)
	}

	fmt.Fprintf(out, "%s\n\n%s\n", view.Name, view.Description)
	if len(view.Civilizations) > 0 {
		fmt.Fprintln(out, "\nRelated civilizations:")
		for _, c := range view.Civilizations {
			fmt.Fprintf(out, "  %-12s %s\n", c.ID, c.Name)
		}
	}
	fmt.Fprintln(out, "\nTransmissions:")
	fmt.Fprintln(out)
	if len(view.Transmissions) == 0 {
		fmt.Fprintln(out, "  No transmissions touch on this topic yet.")
	}
	for _, e := range view.Transmissions {
		printExcerpt(out, e)
	}
	return nil
}
