package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/lookup"
	"github.com/ziadkadry99/akasha/internal/oracle"
	"github.com/ziadkadry99/akasha/internal/progress"
)

var oracleCmd = &cobra.Command{
	Use:   "oracle [question]",
	Short: "Ask the Keeper of the Records",
	Long: `Answers a question with the transmission that shares the most keywords
with it. Without a question, starts an interactive session; type "exit"
or press Ctrl+C to leave.`,
	RunE: runOracle,
}

func init() {
	oracleCmd.Flags().Bool("no-delay", false, "answer without the thinking pause")
	rootCmd.AddCommand(oracleCmd)
}

func runOracle(cmd *cobra.Command, args []string) error {
	noDelay, _ := cmd.Flags().GetBool("no-delay")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	responder := newResponder(cfg, lib)

	delay := cfg.ThinkDelay()
	if noDelay {
		delay = 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		return consult(ctx, out, responder, strings.Join(args, " "), delay)
	}

	fmt.Fprintf(out, "%s\n\n", oracle.Greeting)
	for {
		prompt := promptui.Prompt{Label: "Ask"}
		question, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading question: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(question), "exit") {
			return nil
		}
		if err := consult(ctx, out, responder, question, delay); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// consult shows the thinking spinner, then prints the answer.
func consult(ctx context.Context, out io.Writer, responder *oracle.Responder, question string, delay time.Duration) error {
	if err := progress.Wait(ctx, progress.NewReporter(os.Stderr), "Consulting the records", delay); err != nil {
		return err
	}

	resp := responder.Respond(question)
	logger.Debug("oracle answered",
		zap.String("kind", string(resp.Kind)),
		zap.Int("score", resp.Score),
		zap.Strings("tokens", resp.Tokens))

	fmt.Fprintf(out, "\n%s\n", resp.Text)
	if resp.Excerpt != nil {
		fmt.Fprintf(out, "\n  -- %s, %s\n", resp.Excerpt.Source, lookup.FormatDate(resp.Excerpt.Date))
	}
	fmt.Fprintln(out)
	return nil
}
