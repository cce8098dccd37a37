package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/mantra/internal/compiler"
	"github.com/roach88/mantra/internal/content"
	"github.com/roach88/mantra/internal/score"
	"github.com/roach88/mantra/internal/store"
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path or timeline not found
	ErrCodeWriteFailed = "E007" // File write error

	// Session errors
	ErrCodeSessionParse = "E010" // Session could not be parsed
	ErrCodeSessionRead  = "E011" // Session file unreadable or unsupported

	// Record errors
	ErrCodeRecordFile = "E020" // Record file failed schema validation
	ErrCodeRecordRead = "E021" // Record file unreadable

	// Validation errors
	ErrCodeEmptyTheme = "E040" // Referenced theme has no records

	// Storage errors
	ErrCodeStore = "E030" // Database open/read/write failed
)

// LoadError represents an error that occurred while loading CLI inputs.
type LoadError struct {
	Code    string
	Message string
	Details any
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSession reads a YAML or CUE session file.
func LoadSession(path string) (*score.Session, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("session not found: %s", path)}
	}

	session, err := score.Load(path)
	if err != nil {
		var perr *score.ParseError
		if errors.As(err, &perr) {
			return nil, &LoadError{
				Code:    ErrCodeSessionParse,
				Message: perr.Message,
				Details: map[string]string{"path": perr.Path, "file": path},
			}
		}
		return nil, &LoadError{Code: ErrCodeSessionRead, Message: err.Error()}
	}
	return session, nil
}

// LoadRecords reads and validates a JSON record file.
func LoadRecords(path string) ([]content.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("record file not found: %s", path)}
	}

	records, err := content.LoadRecordsFile(path)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			return nil, &LoadError{
				Code:    ErrCodeRecordFile,
				Message: fmt.Sprintf("%s is not a valid record file", verr.Source),
				Details: verr.Problems,
			}
		}
		return nil, &LoadError{Code: ErrCodeRecordRead, Message: err.Error()}
	}
	return records, nil
}

// OpenStore opens the record database at path, creating it if needed.
func OpenStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeStore, Message: err.Error()}
	}
	return st, nil
}

// OpenExistingStore opens the database at path and fails with
// ErrCodeNotFound if the file does not exist.
func OpenExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("database not found: %s", path)}
	}
	return OpenStore(path)
}

// recordSource picks where theme nodes find their records: a record file
// if one is given, otherwise the database when it exists. The returned
// close function is never nil.
func recordSource(recordsPath, dbPath string, needDB bool) (content.Provider, *store.Store, func(), error) {
	noop := func() {}

	if recordsPath != "" {
		records, err := LoadRecords(recordsPath)
		if err != nil {
			return nil, nil, noop, err
		}
		provider := content.NewMemoryProvider(records...)
		if !needDB {
			return provider, nil, noop, nil
		}
		st, err := OpenStore(dbPath)
		if err != nil {
			return nil, nil, noop, err
		}
		return provider, st, func() { st.Close() }, nil
	}

	if _, err := os.Stat(dbPath); err != nil && !needDB {
		cliLog().WithField("database", dbPath).Debug("no database, themes resolve to silence")
		return nil, nil, noop, nil
	}
	st, err := OpenStore(dbPath)
	if err != nil {
		return nil, nil, noop, err
	}
	return st, st, func() { st.Close() }, nil
}

// codeFor maps an error to a stable CLI error code.
func codeFor(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var verr compiler.ValidationError
	if errors.As(err, &verr) {
		return verr.Code
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrCodeNotFound
	}
	return ErrCodeGeneric
}

// detailsFor returns extra context carried by err, if any.
func detailsFor(err error) any {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Details
	}
	return nil
}

// reportError writes err through the formatter and returns an ExitError
// with the given exit code.
func reportError(f *OutputFormatter, code int, err error) error {
	_ = f.Error(codeFor(err), messageFor(err), detailsFor(err))
	return WrapExitError(code, codeFor(err), err)
}

func messageFor(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message
	}
	return err.Error()
}
