package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/score"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Cycles   int
	CycleMs  float64
	EventMs  float64
	Seed     int64
	Records  string // JSON record file used instead of the database
	Database string
	Save     bool
	Output   string // output file path
}

// CompilationResult is the JSON payload of a compile.
type CompilationResult struct {
	ID       string      `json:"id"`
	Session  string      `json:"session"`
	Saved    bool        `json:"saved"`
	Timeline ir.Timeline `json:"timeline"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <session>",
		Short: "Compile a session to a timeline",
		Long: `Compile a YAML or CUE session into a sorted timeline of timed events.

Theme nodes draw their lines from --records if given, otherwise from the
record database. Flags override the session's own compile options, which
override configured defaults.

Examples:
  mantra compile evening.yaml
  mantra compile evening.cue --cycles 16 --seed 7
  mantra compile evening.yaml --records focus.json -o evening.json
  mantra compile evening.yaml --save --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the timeline to the database")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical timeline JSON to this file")

	return cmd
}

// addCompileFlags registers the flags shared by compile and verify.
func addCompileFlags(cmd *cobra.Command, opts *CompileOptions) {
	cmd.Flags().IntVar(&opts.Cycles, "cycles", 0, "number of cycles to render")
	cmd.Flags().Float64Var(&opts.CycleMs, "cycle-ms", 0, "cycle length in milliseconds")
	cmd.Flags().Float64Var(&opts.EventMs, "event-ms", 0, "maximum event duration in milliseconds")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "root seed for random choices")
	cmd.Flags().StringVar(&opts.Records, "records", "", "JSON record file to draw themes from")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
}

// options layers flags over session options over configured defaults.
func (o *CompileOptions) options(cmd *cobra.Command, session *score.Session) compiler.Options {
	opts := session.Options()
	flags := cmd.Flags()
	if flags.Changed("cycles") {
		opts.Cycles = o.Cycles
	}
	if flags.Changed("cycle-ms") {
		opts.CycleDurationMs = o.CycleMs
	}
	if flags.Changed("event-ms") {
		opts.EventDurationMs = o.EventMs
	}
	if flags.Changed("seed") {
		opts.Seed = o.Seed
	}
	return o.config().Options(opts)
}

func runCompile(ctx context.Context, opts *CompileOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	session, err := LoadSession(path)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	formatter.VerboseLog("Loaded session %q from %s", session.Name, path)

	copts := opts.options(cmd, session)
	if err := copts.Err(); err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	dbPath := opts.database(opts.Database)
	provider, st, closeStore, err := recordSource(opts.Records, dbPath, opts.Save)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer closeStore()

	for _, theme := range score.Themes(session.Pattern) {
		formatter.VerboseLog("Resolving theme: %s", theme)
	}

	p := score.Build(ctx, session.Pattern, score.Env{Provider: provider, Seed: copts.Seed})
	tl := compiler.Compile(p, copts)

	id, err := ir.TimelineID(tl)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	result := &CompilationResult{ID: id, Session: session.Name, Timeline: tl}

	if opts.Save {
		if _, err := st.SaveTimeline(ctx, session.Name, tl); err != nil {
			return reportError(formatter, ExitCommandError, &LoadError{Code: ErrCodeStore, Message: err.Error()})
		}
		result.Saved = true
	}

	var written int
	if opts.Output != "" {
		if written, err = writeTimelineFile(tl, opts.Output); err != nil {
			return reportError(formatter, ExitCommandError, &LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err)})
		}
	}

	cliLog().WithField("session", session.Name).WithField("events", len(tl.Events)).Debug("compiled session")
	return outputCompileSuccess(formatter, result, opts.Output, written)
}

// outputCompileSuccess outputs a compiled timeline.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string, written int) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	tl := result.Timeline
	formatter.Pass("Compiled %s: %s events over %s ms", result.Session,
		humanize.Comma(int64(len(tl.Events))), formatMs(tl.TotalDurationMs))
	fmt.Fprintf(formatter.Writer, "Timeline ID: %s\n\n", result.ID)

	if len(tl.Events) > 0 {
		fmt.Fprintln(formatter.Writer, renderTimeline(tl))
		fmt.Fprintln(formatter.Writer)
	}

	if result.Saved {
		fmt.Fprintln(formatter.Writer, "Saved timeline to database")
	}
	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %s to %s\n", humanize.Bytes(uint64(written)), outputFile)
	}

	return nil
}

// writeTimelineFile writes tl as canonical JSON and returns the byte count.
func writeTimelineFile(tl ir.Timeline, filename string) (int, error) {
	data, err := ir.MarshalCanonical(tl.CanonicalMap())
	if err != nil {
		return 0, fmt.Errorf("marshaling timeline: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing file: %w", err)
	}

	return len(data), nil
}
