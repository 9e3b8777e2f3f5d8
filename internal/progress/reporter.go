package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter shows that the oracle is consulting the records.
type Reporter interface {
	Start(message string)
	Tick()
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive
// terminal, or a CIReporter if the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Writer: w}
	}
	return &TerminalReporter{Writer: w}
}

// TerminalReporter displays a spinner in the terminal.
type TerminalReporter struct {
	Writer io.Writer
	bar    *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(message string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.Writer),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Tick() {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints plain lines suitable for logs and pipes.
type CIReporter struct {
	Writer io.Writer
}

func (r *CIReporter) Start(message string) {
	fmt.Fprintln(r.Writer, message)
}

func (r *CIReporter) Tick() {}

func (r *CIReporter) Finish() {}

// tickInterval paces the spinner.
const tickInterval = 100 * time.Millisecond

// Wait shows r for d, or until ctx is done. A non-positive d returns
// immediately without starting r.
func Wait(ctx context.Context, r Reporter, message string, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	r.Start(message)
	defer r.Finish()

	deadline := time.NewTimer(d)
	defer deadline.Stop()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-deadline.C:
			return nil
		case <-ticker.C:
			r.Tick()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
