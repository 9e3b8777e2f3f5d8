package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/lookup"
)

var spheresCmd = &cobra.Command{
	Use:   "spheres [sphere-id]",
	Short: "List the spheres of wisdom, or read one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpheres,
}

func init() {
	spheresCmd.Flags().StringP("query", "q", "", "only spheres with transmissions matching this text")
	spheresCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(spheresCmd)
}

func runSpheres(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
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

	if len(args) == 1 {
		sphere, ok := lib.Sphere(args[0])
		if !ok {
			return fmt.Errorf("unknown sphere %q", args[0])
		}
		if jsonOutput {
			return printJSON(out, sphere)
		}
		fmt.Fprintf(out, "%s\n%s\n\n", sphere.Title, sphere.Description)
		for _, e := range lookup.Search(sphere.Excerpts, query) {
			printExcerpt(out, e)
		}
		return nil
	}

	spheres := lookup.FilterSpheres(lib.Spheres(), query)
	if jsonOutput {
		return printJSON(out, spheres)
	}
	if len(spheres) == 0 {
		fmt.Fprintf(out, "No spheres resonate with %q.\n", query)
		return nil
	}
	for _, s := range spheres {
		fmt.Fprintf(out, "%-45s %2d transmission(s)  %s\n", s.ID, len(s.Excerpts), s.Title)
	}
	return nil
}
