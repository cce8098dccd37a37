package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/ir"
	"github.com/roach88/mantra/internal/score"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	CompileOptions
	Against string // canonical timeline file to compare with
}

// VerifyResult holds the outcome of a verification.
type VerifyResult struct {
	Session       string `json:"session"`
	ID            string `json:"id"`
	ExpectedID    string `json:"expected_id"`
	Deterministic bool   `json:"deterministic"`
	Match         bool   `json:"match"`
	Diff          string `json:"diff,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{CompileOptions: CompileOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "verify <session>",
		Short: "Verify a session compiles deterministically",
		Long: `Compile a session twice from scratch and check both timelines are identical.

With --against, the compiled timeline is also compared with a canonical
timeline file written earlier by "mantra compile -o". Differences are shown
one event per line.

Exit codes:
  0 - Timelines are identical
  1 - Timelines differ
  2 - Command error (session not found, invalid options, etc.)

Examples:
  mantra verify evening.yaml
  mantra verify evening.yaml --against evening.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, &opts.CompileOptions)
	cmd.Flags().StringVar(&opts.Against, "against", "", "canonical timeline file to compare with")

	return cmd
}

func runVerify(ctx context.Context, opts *VerifyOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	session, err := LoadSession(path)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	copts := opts.options(cmd, session)
	if err := copts.Err(); err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	var expected ir.Timeline
	if opts.Against != "" {
		if expected, err = readTimelineFile(opts.Against); err != nil {
			return reportError(formatter, ExitCommandError, err)
		}
	}

	provider, _, closeStore, err := recordSource(opts.Records, opts.database(opts.Database), false)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer closeStore()

	compile := func() ir.Timeline {
		p := score.Build(ctx, session.Pattern, score.Env{Provider: provider, Seed: copts.Seed})
		return compiler.Compile(p, copts)
	}

	first := compile()
	formatter.VerboseLog("First compile: %d events", len(first.Events))
	second := compile()
	formatter.VerboseLog("Second compile: %d events", len(second.Events))

	firstID, err := ir.TimelineID(first)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	secondID, err := ir.TimelineID(second)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	result := &VerifyResult{
		Session:    session.Name,
		ID:         firstID,
		ExpectedID: secondID,
	}
	result.Deterministic = result.ID == result.ExpectedID
	if !result.Deterministic {
		result.Diff = diffTimelines(second, first)
	}

	result.Match = result.Deterministic
	if opts.Against != "" {
		if result.ExpectedID, err = ir.TimelineID(expected); err != nil {
			return reportError(formatter, ExitCommandError, err)
		}
		result.Match = result.Deterministic && result.ID == result.ExpectedID
		if result.Deterministic && !result.Match {
			result.Diff = diffTimelines(expected, first)
		}
	}

	return outputVerifyResult(formatter, result, opts.Against)
}

func outputVerifyResult(formatter *OutputFormatter, result *VerifyResult, against string) error {
	if formatter.JSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		switch {
		case !result.Deterministic:
			formatter.Fail("%s: compiling twice produced different timelines", result.Session)
		case !result.Match:
			formatter.Fail("%s: timeline differs from %s", result.Session, against)
		default:
			formatter.Pass("%s: deterministic (%s)", result.Session, result.ID)
		}
		if result.Diff != "" {
			fmt.Fprintln(formatter.Writer)
			fmt.Fprint(formatter.Writer, result.Diff)
		}
	}

	if !result.Match {
		// Verification failures = exit code 1
		return NewExitError(ExitFailure, "timelines differ")
	}
	return nil
}

// readTimelineFile reads a timeline written by writeTimelineFile.
func readTimelineFile(path string) (ir.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ir.Timeline{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("timeline file not found: %s", path)}
		}
		return ir.Timeline{}, &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}

	var tl ir.Timeline
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tl); err != nil {
		return ir.Timeline{}, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("%s is not a timeline: %v", path, err)}
	}
	if tl.Events == nil {
		tl.Events = []ir.TimelineEvent{}
	}
	if tl.Metadata.Themes == nil {
		tl.Metadata.Themes = []string{}
	}
	return tl, nil
}

// diffTimelines renders a line diff of two timelines, one canonical event
// per line, prefixing removed lines with "-" and added lines with "+".
func diffTimelines(want, got ir.Timeline) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(timelineLines(want), timelineLines(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
		}
	}
	return buf.String()
}

// timelineLines writes the metadata then each event as canonical JSON lines.
func timelineLines(tl ir.Timeline) string {
	m := tl.CanonicalMap()
	events, _ := m["events"].([]any)
	delete(m, "events")

	var buf strings.Builder
	writeLine := func(v any) {
		data, err := ir.MarshalCanonical(v)
		if err != nil {
			data = []byte(err.Error())
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	writeLine(m)
	for _, ev := range events {
		writeLine(ev)
	}
	return buf.String()
}
