package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/catalog"
)

var civsCmd = &cobra.Command{
	Use:     "civs [civilization-id]",
	Aliases: []string{"civilizations"},
	Short:   "Browse the civilization directory",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runCivs,
}

func init() {
	civsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(civsCmd)
}

func runCivs(cmd *cobra.Command, args []string) error {
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
		civs := lib.Civilizations()
		if jsonOutput {
			return printJSON(out, civs)
		}
		for _, c := range civs {
			fmt.Fprintf(out, "%-12s %-28s %-22s %s\n", c.ID, c.Name, c.System, c.Density)
		}
		return nil
	}

	view, ok := catalog.New(lib, newResponder(cfg, lib), logger).Civilization(args[0])
	if !ok {
		return fmt.Errorf("unknown civilization %q", args[0])
	}
	if jsonOutput {
		return printJSON(out, view)
	}

	fmt.Fprintf(out, "%s\n%s · %s · %s\n\n%s\n", view.Name, view.System, view.Density, view.Theme, view.Description)
	if view.Appearance != "" {
		fmt.Fprintf(out, "\nAppearance: %s\n", view.Appearance)
	}
	if len(view.Traits) > 0 {
		fmt.Fprintf(out, "Traits: %s\n", strings.Join(view.Traits, ", "))
	}

	fmt.Fprintf(out, "\nTransmissions (%d):\n\n", len(view.Transmissions))
	if len(view.Transmissions) == 0 {
		fmt.Fprintln(out, "  No direct transmissions archived yet.")
	}
	for _, e := range view.Transmissions {
		printExcerpt(out, e)
	}
	return nil
}
