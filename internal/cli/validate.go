package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/score"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	CompileOptions
	Strict bool // unknown themes are errors
}

// ThemeStatus reports how many records a referenced theme has.
type ThemeStatus struct {
	Theme   string `json:"theme"`
	Records int    `json:"records"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                       `json:"valid"`
	Session string                     `json:"session"`
	Options compiler.Options           `json:"options"`
	Themes  []ThemeStatus              `json:"themes"`
	Errors  []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{CompileOptions: CompileOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "validate <session>",
		Short: "Validate a session without compiling it",
		Long: `Parse a session, check its effective compile options and report the
records available to each theme it references.

Faster than compile for development feedback. A theme with no records
compiles to silence; --strict turns that into a validation failure.

Exit codes:
  0 - Session is valid
  1 - Invalid options, or an empty theme with --strict
  2 - Command error (session not found or unparseable)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), opts, args[0], cmd)
		},
	}

	addCompileFlags(cmd, &opts.CompileOptions)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when a theme has no records")

	return cmd
}

func runValidate(ctx context.Context, opts *ValidateOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	session, err := LoadSession(path)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}

	result := &ValidationResult{
		Session: session.Name,
		Options: opts.options(cmd, session),
		Themes:  []ThemeStatus{},
	}
	result.Errors = result.Options.Validate()

	provider, _, closeStore, err := recordSource(opts.Records, opts.database(opts.Database), false)
	if err != nil {
		return reportError(formatter, ExitCommandError, err)
	}
	defer closeStore()

	for _, theme := range score.Themes(session.Pattern) {
		n := len(content.Lookup(ctx, provider, theme))
		formatter.VerboseLog("Theme %s: %d record(s)", theme, n)
		result.Themes = append(result.Themes, ThemeStatus{Theme: theme, Records: n})
		if n == 0 && opts.Strict {
			result.Errors = append(result.Errors, compiler.ValidationError{
				Field:   "theme",
				Message: fmt.Sprintf("theme %q has no records", theme),
				Code:    ErrCodeEmptyTheme,
			})
		}
	}

	result.Valid = len(result.Errors) == 0
	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result *ValidationResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	formatter.Pass("Session %s is valid", result.Session)
	printThemeStatus(formatter, result.Themes)
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result *ValidationResult) error {
	errs := result.Errors
	if formatter.JSON() {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	formatter.Fail("Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", err.Code, err.Field, err.Message)
	}
	printThemeStatus(formatter, result.Themes)

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

func printThemeStatus(formatter *OutputFormatter, themes []ThemeStatus) {
	if len(themes) == 0 {
		return
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintln(formatter.Writer, "Themes:")
	for _, th := range themes {
		if th.Records == 0 {
			fmt.Fprintf(formatter.Writer, "  %s: no records (compiles to silence)\n", th.Theme)
			continue
		}
		fmt.Fprintf(formatter.Writer, "  %s: %d record(s)\n", th.Theme, th.Records)
	}
}
