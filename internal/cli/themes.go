package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/store"
)

// ThemesOptions holds flags for the themes command.
type ThemesOptions struct {
	*RootOptions
	Database string
}

// NewThemesCommand creates the themes command.
func NewThemesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ThemesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List themes and their record counts",
		Long: `List every theme in the record database with the number of records it holds.

Examples:
  mantra themes
  mantra themes --db ./sessions.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemes(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runThemes(ctx context.Context, opts *ThemesOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	st, err := OpenExistingStore(opts.database(opts.Database))
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer st.Close()

	themes, err := st.Themes(ctx)
	if err != nil {
		return reportError(formatter, ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
	}

	if formatter.JSON() {
		return formatter.Success(themes)
	}
	if len(themes) == 0 {
		fmt.Fprintln(formatter.Writer, "No themes found.")
		return nil
	}
	fmt.Fprintln(formatter.Writer, renderThemes(themes))
	return nil
}

func renderThemes(themes []store.ThemeCount) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"theme", "records"})
	total := 0
	for _, th := range themes {
		tbl.AppendRow(table.Row{th.Theme, humanize.Comma(int64(th.Count))})
		total += th.Count
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d themes", len(themes)), humanize.Comma(int64(total))})
	return tbl.Render()
}
