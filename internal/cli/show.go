package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// ShowResult is the JSON payload for a single saved timeline.
type ShowResult struct {
	ID       string      `json:"id"`
	Timeline ir.Timeline `json:"timeline"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [timeline-id]",
		Short: "Show saved timelines",
		Long: `Show a timeline saved with "mantra compile --save".

Without an ID, lists every saved timeline in save order.

Examples:
  mantra show
  mantra show 6f1c2a7e-3b0d-5c8e-9a41-2d7f0b6e8c13
  mantra show 6f1c2a7e-3b0d-5c8e-9a41-2d7f0b6e8c13 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runShow(cmd.Context(), opts, id, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runShow(ctx context.Context, opts *ShowOptions, id string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	st, err := OpenExistingStore(opts.database(opts.Database))
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer st.Close()

	if id == "" {
		return showList(ctx, formatter, st)
	}

	tl, err := st.LoadTimeline(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return reportError(formatter, ExitCommandError, &LoadError{
				Code:    ErrCodeNotFound,
				Message: fmt.Sprintf("timeline not found: %s", id),
			})
		}
		return reportError(formatter, ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}

	if formatter.JSON() {
		return formatter.Success(ShowResult{ID: id, Timeline: tl})
	}

	fmt.Fprintf(formatter.Writer, "Timeline %s\n", id)
	fmt.Fprintf(formatter.Writer, "  %s events over %s ms, %d cycle(s) of %s ms, seed %d\n\n",
		humanize.Comma(int64(len(tl.Events))), formatMs(tl.TotalDurationMs),
		tl.Metadata.Cycles, formatMs(tl.Metadata.CycleDurationMs), tl.Metadata.Seed)
	if len(tl.Events) > 0 {
		fmt.Fprintln(formatter.Writer, renderTimeline(tl))
	}
	return nil
}

func showList(ctx context.Context, formatter *OutputFormatter, st *store.Store) error {
	infos, err := st.ListTimelines(ctx)
	if err != nil {
		return reportError(formatter, ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}

	if formatter.JSON() {
		return formatter.Success(infos)
	}
	if len(infos) == 0 {
		fmt.Fprintln(formatter.Writer, "No saved timelines.")
		return nil
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"id", "name", "events", "duration ms"})
	for _, info := range infos {
		tbl.AppendRow(table.Row{info.ID, info.Name, humanize.Comma(int64(info.EventCount)), formatMs(info.TotalDurationMs)})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d timelines", len(infos))})
	fmt.Fprintln(formatter.Writer, tbl.Render())
	return nil
}
