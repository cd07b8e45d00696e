// Package cli implements the offline planning commands.  The commands run the
// timeline and risk engines directly against flag input, with no database or
// API server required, so a traveller or a support engineer can answer "can I
// still make this trip" from a terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/VisaPath-Intelligence/pkg/clock"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	OutputFormat string
	AsOf         string
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "visapath",
		Short: "VisaPath-Intelligence CLI — visa timeline and trip feasibility planning",
		Long: "VisaPath-Intelligence computes visa application timelines, deadline risk\n" +
			"and trip feasibility from processing-time data.  The CLI runs the same\n" +
			"planning engine as the API server, entirely offline.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.StringVar(&opts.AsOf, "as-of", "", "evaluate as of this date (YYYY-MM-DD, default: today)")

	cmd.AddCommand(
		newPlanCommand(opts),
		newSeasonCommand(opts),
	)

	return cmd
}

// Execute is the entry point for the CLI binary.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// planningClock builds the evaluation clock from the --as-of flag; an empty
// flag means the wall clock.
func planningClock(opts *rootOptions) (clock.Clock, error) {
	if opts.AsOf == "" {
		return clock.System(), nil
	}
	at, err := time.Parse("2006-01-02", opts.AsOf)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of date %q: expected YYYY-MM-DD", opts.AsOf)
	}
	return clock.Fixed(at), nil
}

// printResult renders data in the selected output format.
func printResult(cmd *cobra.Command, opts *rootOptions, data interface{}, text func() string) error {
	if strings.EqualFold(opts.OutputFormat, "json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	fmt.Fprint(cmd.OutOrStdout(), text())
	return nil
}

// formatTable renders headers and rows as an aligned ASCII table.
func formatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	for i, h := range headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(padRight(h, colWidths[i]))
	}
	sb.WriteString("\n")
	for i, w := range colWidths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		for i := 0; i < len(headers); i++ {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			sb.WriteString(padRight(val, colWidths[i]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
