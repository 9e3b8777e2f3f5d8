package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/akasha/internal/lookup"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search transmissions by content or source",
	Long:  `Case-insensitive substring search over every transmission's content and source. With no query, every transmission is listed.`,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (0 for all)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := lookup.Search(lib.Excerpts(), query)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, results)
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No transmissions resonate with %q.\n", query)
		return nil
	}
	fmt.Fprintf(out, "Found %d transmission(s):\n\n", len(results))
	for _, e := range results {
		printExcerpt(out, e)
	}
	return nil
}
