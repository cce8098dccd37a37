package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var recordSchema []byte

// ValidationError lists every schema violation found in a record file.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid record file: %s", e.Source, strings.Join(e.Problems, "; "))
}

// themeDocument is the per-theme file layout.
type themeDocument struct {
	Theme       string   `json:"theme"`
	Description string   `json:"description"`
	Mantras     []Record `json:"mantras"`
}

// LoadRecordsFile reads and validates a JSON record file. Records without a
// Source get the file's base name.
func LoadRecordsFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	return ParseRecords(data, filepath.Base(path))
}

// ParseRecords validates data against the record schema and decodes it.
// data is either an array of records each naming its theme, or a theme
// document {"theme": ..., "mantras": [...]}.
func ParseRecords(data []byte, source string) ([]Record, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(recordSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: parse record file: %w", source, err)
	}
	if !result.Valid() {
		verr := &ValidationError{Source: source}
		for _, re := range result.Errors() {
			verr.Problems = append(verr.Problems, re.String())
		}
		return nil, verr
	}

	var records []Record
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%s: decode records: %w", source, err)
		}
	} else {
		var doc themeDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%s: decode theme document: %w", source, err)
		}
		records = doc.Mantras
		for i := range records {
			if records[i].Theme == "" {
				records[i].Theme = doc.Theme
			}
		}
	}

	for i := range records {
		if records[i].Source == "" {
			records[i].Source = source
		}
		records[i] = records[i].Normalize()
	}
	return records, nil
}
