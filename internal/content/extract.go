package content

import (
	"fmt"

	"github.com/roach88/mantra/internal/ir"
)

// Extracted is the display form of a pattern value.
type Extracted struct {
	Kind string
	Text string
	Meta *ir.EventMetadata
}

// Texter is implemented by values that expose display text.
type Texter interface {
	Text() string
}

// Liner is implemented by values that expose a content line.
type Liner interface {
	Line() string
}

// Extract maps a pattern value to text and metadata. Shapes are tried in a
// fixed order:
//
//  1. string
//  2. Item, dispatched on its Kind
//  3. Record or *Record
//  4. Texter, then Liner
//  5. map with a "text" key, then a "line" key
//  6. fmt.Stringer, then fmt.Sprint
func Extract(v any) Extracted {
	switch val := v.(type) {
	case string:
		return textOf(val)
	case Item:
		if val.Kind == ItemRecord {
			return recordOf(val.Record)
		}
		return textOf(val.Text)
	case Record:
		return recordOf(val)
	case *Record:
		if val == nil {
			return textOf("")
		}
		return recordOf(*val)
	case Texter:
		return textOf(val.Text())
	case Liner:
		return textOf(val.Line())
	case map[string]any:
		if s, ok := stringField(val, "text"); ok {
			return textOf(s)
		}
		if s, ok := stringField(val, "line"); ok {
			return textOf(s)
		}
	case map[string]string:
		if s, ok := val["text"]; ok {
			return textOf(s)
		}
		if s, ok := val["line"]; ok {
			return textOf(s)
		}
	case fmt.Stringer:
		return textOf(val.String())
	}
	return textOf(fmt.Sprint(v))
}

func textOf(s string) Extracted {
	return Extracted{Kind: ir.KindText, Text: s}
}

func recordOf(r Record) Extracted {
	return Extracted{
		Kind: ir.KindMantra,
		Text: r.Line,
		Meta: &ir.EventMetadata{
			Theme:      r.Theme,
			Difficulty: r.Difficulty.Level().String(),
			Source:     r.Source,
		},
	}
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
