package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/content"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportFileResult holds the import outcome for one file.
type ImportFileResult struct {
	File     string `json:"file"`
	Records  int    `json:"records"`
	Imported int    `json:"imported"`
}

// ImportResult holds the overall import outcome.
type ImportResult struct {
	Files    []ImportFileResult `json:"files"`
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <records.json>...",
		Short: "Import content records into the database",
		Long: `Validate JSON record files and import them into the record database.

A record file is either an array of records, each with its own theme, or a
theme document {"theme": ..., "mantras": [...]}. Records already present
(same theme and line) are skipped. Each file is imported atomically.

Examples:
  mantra import focus.json calm.json
  mantra import focus.json --db ./sessions.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runImport(ctx context.Context, opts *ImportOptions, files []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	// Validate every file before touching the database.
	batches := make([][]content.Record, len(files))
	for i, file := range files {
		records, err := LoadRecords(file)
		if err != nil {
			return reportError(formatter, ExitCommandError, err)
		}
		formatter.VerboseLog("Validated %s: %d record(s)", file, len(records))
		batches[i] = records
	}

	st, err := OpenStore(opts.database(opts.Database))
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer st.Close()

	result := &ImportResult{Files: make([]ImportFileResult, 0, len(files))}
	for i, file := range files {
		n, err := st.ImportRecords(ctx, batches[i])
		if err != nil {
			return reportError(formatter, ExitCommandError, &LoadError{
				Code:    ErrCodeStore,
				Message: fmt.Sprintf("importing %s: %v", file, err),
			})
		}
		result.Files = append(result.Files, ImportFileResult{File: file, Records: len(batches[i]), Imported: n})
		result.Imported += n
		result.Skipped += len(batches[i]) - n
	}

	return outputImportResult(formatter, result)
}

func outputImportResult(formatter *OutputFormatter, result *ImportResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	for _, f := range result.Files {
		formatter.Pass("%s: imported %s of %s record(s)", f.File,
			humanize.Comma(int64(f.Imported)), humanize.Comma(int64(f.Records)))
	}
	fmt.Fprintf(formatter.Writer, "\nImport Summary: %s imported, %s skipped\n",
		humanize.Comma(int64(result.Imported)), humanize.Comma(int64(result.Skipped)))
	return nil
}
