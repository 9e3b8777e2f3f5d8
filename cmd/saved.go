package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved transmissions",
	RunE:  runSavedList,
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <excerpt-id>",
	Short: "Save a transmission, or remove it if already saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedToggle,
}

var savedStatusCmd = &cobra.Command{
	Use:   "status <excerpt-id>",
	Short: "Report whether a transmission is saved",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedStatus,
}

func init() {
	savedCmd.Flags().Bool("json", false, "output as JSON")
	savedCmd.AddCommand(savedToggleCmd)
	savedCmd.AddCommand(savedStatusCmd)
	rootCmd.AddCommand(savedCmd)
}

func runSavedList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, database, err := openBookmarks(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	set := store.Snapshot()
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, set)
	}
	if len(set) == 0 {
		fmt.Fprintln(out, "No saved transmissions yet. Use `akasha saved toggle <excerpt-id>` to keep one.")
		return nil
	}
	fmt.Fprintf(out, "%d saved transmission(s):\n\n", len(set))
	for _, e := range set {
		printExcerpt(out, e)
	}
	return nil
}

func runSavedToggle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	e, ok := lib.Excerpt(args[0])
	if !ok {
		return fmt.Errorf("unknown transmission %q", args[0])
	}

	store, database, err := openBookmarks(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	saved, set := store.Toggle(cmd.Context(), e)
	if err := store.LastPersistError(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: saved transmissions could not be persisted: %v\n", err)
	}

	verb := "Removed"
	if saved {
		verb = "Saved"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d saved)\n", verb, e.ID, len(set))
	return nil
}

func runSavedStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	e, ok := lib.Excerpt(args[0])
	if !ok {
		return fmt.Errorf("unknown transmission %q", args[0])
	}

	store, database, err := openBookmarks(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if store.IsSaved(e) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is saved\n", e.ID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not saved\n", e.ID)
	}
	return nil
}
